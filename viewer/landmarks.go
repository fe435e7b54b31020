package viewer

import rl "github.com/gen2brain/raylib-go/raylib"

// landmark is a zoom target in projected (frac) coordinates: the screen
// x axis spans the imaginary direction, the screen y axis the negated
// real direction.
type landmark struct {
	name             string
	centerX, centerY float64
	zoom             float64
}

// landmarks maps number-row keys to classic Mandelbrot locations.
var landmarks = map[int32]landmark{
	rl.KeyOne:   {name: "home", centerX: 0, centerY: 0, zoom: 1},
	rl.KeyTwo:   {name: "seahorse valley", centerX: 0.10, centerY: 0.75, zoom: 30},
	rl.KeyThree: {name: "elephant valley", centerX: 0.006, centerY: -0.28, zoom: 40},
	rl.KeyFour:  {name: "triple spiral", centerX: 0.0965, centerY: 0.7465, zoom: 1000},
	rl.KeyFive:  {name: "dragon valley", centerX: 0.1825, centerY: 0.7375, zoom: 600},
	rl.KeySix:   {name: "spiral minibrot", centerX: 0.13175, centerY: 0.74275, zoom: 2000},
}
