package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/zaesho/carframe/carframe"
)

// Prints each player's extrapolated boost amount over time, one column per
// player, for eyeballing depletion/pickup behavior against known replays.
func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run . <frames.dump> [sample-every-n]")
		os.Exit(1)
	}

	sample := 30
	if len(os.Args) > 2 {
		if _, err := fmt.Sscanf(os.Args[2], "%d", &sample); err != nil || sample < 1 {
			fmt.Println("sample-every-n must be a positive integer")
			os.Exit(1)
		}
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

	cfg, err := carframe.LoadTypeConfig("")
	if err != nil {
		fmt.Printf("Error loading type config: %v\n", err)
		os.Exit(1)
	}
	data, err := carframe.ProcessDump(d, cfg)
	if err != nil {
		fmt.Printf("Error processing: %v\n", err)
		os.Exit(1)
	}

	players := make([]carframe.PlayerID, 0, len(data.Players))
	for pid := range data.Players {
		players = append(players, pid)
	}
	sort.Slice(players, func(i, j int) bool {
		return players[i].String() < players[j].String()
	})

	fmt.Printf("frame")
	for _, pid := range players {
		name := pid.String()
		if seq := data.Players[pid]; len(seq) > 0 {
			for _, pf := range seq {
				if pf != nil && pf.Name != "" {
					name = pf.Name
					break
				}
			}
		}
		fmt.Printf("  %12.12s", name)
	}
	fmt.Println()

	for i := 0; i < data.FrameCount; i += sample {
		fmt.Printf("%5d", i)
		for _, pid := range players {
			pf := data.Players[pid][i]
			if pf == nil {
				fmt.Printf("  %12s", "-")
			} else {
				fmt.Printf("  %12.1f", pf.Boost)
			}
		}
		fmt.Println()
	}
}
