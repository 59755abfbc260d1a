package astro_test

import (
	"fmt"

	"github.com/jonwraymond/astrochart/astro"
)

func ExampleNormalize() {
	fmt.Println(astro.Normalize(-30))
	fmt.Println(astro.Normalize(370))
	// Output:
	// 330
	// 10
}

func ExampleDMS() {
	fmt.Println(astro.DMS(10.5))
	fmt.Println(astro.DMS(29.9999999999))
	// Output:
	// 10°30'0"
	// 30°0'0"
}

func ExampleDetectAspects() {
	positions := map[astro.Point]float64{
		astro.BodyPoint(astro.BodySun):  10,
		astro.BodyPoint(astro.BodyMoon): 100,
	}

	aspects := astro.DetectAspects(positions, astro.DefaultAspectCatalog())
	for _, a := range aspects {
		fmt.Printf("%s-%s %s at %.0f°\n", a.First, a.Second, a.Type, a.Angle)
	}
	// Output:
	// sun-moon square at 90°
}

func ExampleResolveCusp() {
	// With no provider data, houses degrade to equal spacing from the origin.
	lon, _ := astro.ResolveCusp(nil, 7, 100)
	fmt.Println(lon)
	// Output:
	// 280
}
