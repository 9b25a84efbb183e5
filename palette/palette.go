package palette

// Palette is the pair of colors the painter switches between.
type Palette struct {
	Main Color
	Help Color
}

func Default() Palette {
	return Palette{Main: Black, Help: White}
}

// Swap exchanges the main and help colors.
func (p *Palette) Swap() {
	p.Main, p.Help = p.Help, p.Main
}
