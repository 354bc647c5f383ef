package utils

type colors struct {
	c map[string]int
}

var Colors = colors{
	// Palette: https://coolors.co/606c38-283618-fefae0-dda15e-bc6c25
	c: map[string]int{
		"Dark moss green": 0x606c38,
		"Pakistan green":  0x283618,
		"Earth yellow":    0xdda15e,
		"Tiger's eye":     0xbc6c25,
	},
}

// Ok returns the color code for success messages
func (c colors) Ok() int {
	return c.c["Dark moss green"]
}

// Info returns the color code for informational messages
func (c colors) Info() int {
	return c.c["Pakistan green"]
}

// Warning returns the color code for warning messages
func (c colors) Warning() int {
	return c.c["Earth yellow"]
}

// Error returns the color code for error messages
func (c colors) Error() int {
	return c.c["Tiger's eye"]
}
