package main

import (
	"fmt"
	"os"

	"github.com/zaesho/carframe/carframe"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run . <frames.dump> [types.yaml]")
		os.Exit(1)
	}

	cfgPath := ""
	if len(os.Args) > 2 {
		cfgPath = os.Args[2]
	}
	cfg, err := carframe.LoadTypeConfig(cfgPath)
	if err != nil {
		fmt.Printf("Error loading type config: %v\n", err)
		os.Exit(1)
	}

	f, err := os.Open(os.Args[1])
	if err != nil {
		fmt.Printf("Error opening file: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	d, err := carframe.ReadDump(f)
	if err != nil {
		fmt.Printf("Error reading dump: %v\n", err)
		os.Exit(1)
	}

	data, err := carframe.ProcessDump(d, cfg)
	if err != nil {
		fmt.Printf("Error processing: %v\n", err)
		os.Exit(1)
	}

	tracked := 0
	for i, bf := range data.Ball {
		var t float32
		if m := data.Meta[i]; m != nil {
			t = m.Time
		}
		if bf == nil {
			continue
		}
		tracked++
		loc := bf.RigidBody.Location
		// Bias-centered wire integers; subtract to recover signed offsets.
		fmt.Printf("%5d  t=%8.3f  x=%7d y=%7d z=%7d\n",
			i, t, loc.DX-loc.Bias, loc.DY-loc.Bias, loc.DZ-loc.Bias)
	}
	fmt.Printf("\nBall tracked in %d/%d frames\n", tracked, data.FrameCount)
}
