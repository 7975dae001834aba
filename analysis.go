package lsystem

import (
	"io"
	"log"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/valyala/fasthttp"
)

// Growth records the sentence length of every generation of a grammar.
type Growth struct {
	Name    string
	Lengths []int
}

// AnalyseGrowth resets it and iterates it n times, sampling the sentence
// length after each generation. The axiom is sample 0.
func AnalyseGrowth(name string, it Iterator, n int) (Growth, error) {
	it.Reset()
	g := Growth{Name: name, Lengths: make([]int, 0, n+1)}
	g.Lengths = append(g.Lengths, len(it.Sentence()))
	for i := 0; i < n; i++ {
		s, err := it.IterateOnce()
		if err != nil {
			return g, err
		}
		g.Lengths = append(g.Lengths, len(s))
	}
	return g, nil
}

// Rates is the length ratio between consecutive generations.
func (g Growth) Rates() []float64 {
	if len(g.Lengths) < 2 {
		return nil
	}
	rates := make([]float64, 0, len(g.Lengths)-1)
	for i := 1; i < len(g.Lengths); i++ {
		prev := g.Lengths[i-1]
		if prev == 0 {
			rates = append(rates, 0)
			continue
		}
		rates = append(rates, float64(g.Lengths[i])/float64(prev))
	}
	return rates
}

func (g Growth) AvgRate() float64 {
	rates := g.Rates()
	if len(rates) == 0 {
		return 0
	}
	sum := 0.0
	for _, r := range rates {
		sum += r
	}
	return sum / float64(len(rates))
}

func (g Growth) RenderChart(w io.Writer) error {
	bar := charts.NewBar()
	bar.SetGlobalOptions(charts.WithTitleOpts(opts.Title{
		Title:    "Sentence growth of " + g.Name,
		Subtitle: strconv.Itoa(len(g.Lengths)-1) + " generations (Avg growth " + strconv.FormatFloat(g.AvgRate(), 'f', 4, 64) + ")",
	}))

	labels := make([]string, len(g.Lengths))
	items := make([]opts.BarData, len(g.Lengths))
	for i, l := range g.Lengths {
		labels[i] = strconv.Itoa(i)
		items[i] = opts.BarData{Value: l}
	}

	bar.SetXAxis(labels).
		AddSeries("Sentence length", items)
	return bar.Render(w)
}

// Serve exposes the growth chart of every grammar under /<name>, and all
// of them at /.
func Serve(addr string, growths []Growth) error {
	byPath := make(map[string]Growth, len(growths))
	for _, g := range growths {
		log.Println("Registering handler for grammar", g.Name)
		byPath["/"+g.Name] = g
	}

	handler := func(ctx *fasthttp.RequestCtx) {
		ctx.SetContentType("text/html; charset=utf-8")
		path := string(ctx.Path())
		if path == "/" {
			for _, g := range growths {
				if err := g.RenderChart(ctx); err != nil {
					ctx.Error(err.Error(), fasthttp.StatusInternalServerError)
					return
				}
			}
			return
		}
		g, ok := byPath[path]
		if !ok {
			ctx.Error("unknown grammar", fasthttp.StatusNotFound)
			return
		}
		if err := g.RenderChart(ctx); err != nil {
			ctx.Error(err.Error(), fasthttp.StatusInternalServerError)
		}
	}

	log.Printf("Starting HTTP server on %q", addr)
	return fasthttp.ListenAndServe(addr, handler)
}
