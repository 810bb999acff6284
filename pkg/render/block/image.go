package block

// Image draws a raster image scaled to the context width, keeping its
// aspect ratio (height over width). Images taller than the theme's maximum
// chart height are scaled down further and centered. A zero aspect or
// missing data draws nothing and takes no space.
func Image(name string, data []byte, aspect float64) Func {
	return func(mode Mode, ctx Context) float64 {
		if len(data) == 0 || aspect <= 0 || ctx.Width <= 0 {
			return 0
		}
		w, h := ctx.Width, ctx.Width*aspect
		if maxH := ctx.Theme.Spacing.ChartMaxH; h > maxH {
			w, h = maxH/aspect, maxH
		}
		if mode == Draw {
			// Failures are sticky on the surface and checked by the engine.
			_ = ctx.Surface.DrawImage(name, data, ctx.X+(ctx.Width-w)/2, ctx.Y, w, h)
		}
		return h
	}
}
