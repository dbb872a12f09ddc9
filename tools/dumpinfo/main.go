package main

import (
	"fmt"
	"os"

	"github.com/zaesho/carframe/carframe"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run . <frames.dump>")
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

	fmt.Printf("Replay:      %s\n", d.ReplayID)
	fmt.Printf("Net version: %d\n", d.NetVersion)
	fmt.Printf("Objects:     %d\n", len(d.Objects))
	fmt.Printf("Frames:      %d\n", len(d.Frames))

	var spawns, deletes, updates int
	for _, fr := range d.Frames {
		spawns += len(fr.NewActors)
		deletes += len(fr.DeletedActors)
		updates += len(fr.UpdatedActors)
	}
	fmt.Printf("\nEvents: %d spawns, %d deletes, %d updates\n", spawns, deletes, updates)
	if len(d.Frames) > 0 {
		last := d.Frames[len(d.Frames)-1]
		fmt.Printf("Duration: %.2fs\n", last.Time)
	}
}
