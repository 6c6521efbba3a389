package style

// Attribute flags.
var (
	Reset     = must(CategoryAttr, "reset")
	Bold      = must(CategoryAttr, "bold")
	Dim       = must(CategoryAttr, "dim")
	Underline = must(CategoryAttr, "underline")
	Blink     = must(CategoryAttr, "blink")
	Invert    = must(CategoryAttr, "invert")
	Hidden    = must(CategoryAttr, "hidden")
)

// Foreground color flags.
var (
	FgDefault     = must(CategoryColor, "default")
	FgBlack       = must(CategoryColor, "black")
	FgDarkRed     = must(CategoryColor, "darkred")
	FgDarkGreen   = must(CategoryColor, "darkgreen")
	FgDarkYellow  = must(CategoryColor, "darkyellow")
	FgDarkBlue    = must(CategoryColor, "darkblue")
	FgDarkMagenta = must(CategoryColor, "darkmagenta")
	FgDarkCyan    = must(CategoryColor, "darkcyan")
	FgGray        = must(CategoryColor, "gray")
	FgDarkGray    = must(CategoryColor, "darkgray")
	FgRed         = must(CategoryColor, "red")
	FgGreen       = must(CategoryColor, "green")
	FgYellow      = must(CategoryColor, "yellow")
	FgBlue        = must(CategoryColor, "blue")
	FgMagenta     = must(CategoryColor, "magenta")
	FgCyan        = must(CategoryColor, "cyan")
	FgWhite       = must(CategoryColor, "white")
)

// Background fill flags.
var (
	BgDefault     = must(CategoryFill, "default")
	BgBlack       = must(CategoryFill, "black")
	BgDarkRed     = must(CategoryFill, "darkred")
	BgDarkGreen   = must(CategoryFill, "darkgreen")
	BgDarkYellow  = must(CategoryFill, "darkyellow")
	BgDarkBlue    = must(CategoryFill, "darkblue")
	BgDarkMagenta = must(CategoryFill, "darkmagenta")
	BgDarkCyan    = must(CategoryFill, "darkcyan")
	BgGray        = must(CategoryFill, "gray")
	BgDarkGray    = must(CategoryFill, "darkgray")
	BgRed         = must(CategoryFill, "red")
	BgGreen       = must(CategoryFill, "green")
	BgYellow      = must(CategoryFill, "yellow")
	BgBlue        = must(CategoryFill, "blue")
	BgMagenta     = must(CategoryFill, "magenta")
	BgCyan        = must(CategoryFill, "cyan")
	BgWhite       = must(CategoryFill, "white")
)

func must(cat Category, name string) Combination {
	f, ok := Default().Lookup(cat, name)
	if !ok {
		panic("style: undefined flag " + cat.String() + "." + name)
	}

	return f.Bit
}
