package main

import (
	"flag"
	"fmt"
	"os"

	"track-replicator/internal/replicate"
	"track-replicator/internal/trackdb"
)

func main() {
	shapeID := flag.Int("shape", -1, "Print only this track shape")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "usage: inspecttrack [-shape id] tsection.dat")
		os.Exit(2)
	}

	db, err := trackdb.Load(flag.Arg(0))
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Sections: %d, Shapes: %d\n", len(db.Sections), len(db.Shapes))

	for _, ts := range db.ShapesByID() {
		if *shapeID >= 0 && ts.ID != *shapeID {
			continue
		}
		fmt.Printf("Shape %d %s: %d paths\n", ts.ID, ts.FileName, len(ts.Paths))

		paths, err := replicate.ShapeLegs(ts, db.Sections)
		if err != nil {
			fmt.Printf("  Error: %v\n", err)
			continue
		}
		for pi, legs := range paths {
			fmt.Printf("  Path[%d]: sections=%v\n", pi, ts.Paths[pi].SectionIDs)
			for li, l := range legs {
				end := l.End()
				if l.Leg.IsStraight() {
					fmt.Printf("    Leg[%d]: straight %.3f", li, l.Leg.Straight)
				} else {
					fmt.Printf("    Leg[%d]: r=%.1f a=%.2f len=%.3f", li, l.Leg.Radius, l.Leg.Angle, l.Leg.Length())
				}
				fmt.Printf(" gauge=%.3f start=(%.2f, %.2f, %.2f @%.1f) end=(%.2f, %.2f, %.2f @%.1f)\n",
					l.Gauge,
					l.Start.Position[0], l.Start.Position[1], l.Start.Position[2], l.Start.Heading,
					end.Position[0], end.Position[1], end.Position[2], end.Heading)
			}
		}
	}
}
