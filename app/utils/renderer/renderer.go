package renderer

import (
	"html/template"

	"github.com/sellaap/go-storefront/app/helpers"
	"github.com/shopspring/decimal"
	"github.com/unrolled/render"
)

func New() *render.Render {
	return render.New(render.Options{
		Layout:     "layout",
		Extensions: []string{".html"},
		Funcs: []template.FuncMap{
			{
				"until": func(count int) []int {
					items := make([]int, count)
					for i := 0; i < count; i++ {
						items[i] = i
					}
					return items
				},
				"add": func(a, b int) int { return a + b },
				"sub": func(a, b int) int { return a - b },
				"price": func(amount decimal.Decimal, currency string) string {
					return helpers.FormatPrice(amount, currency)
				},
				"features": func(raw string) []string {
					return helpers.DecodeFeatures(raw)
				},
			},
		},
	})
}
