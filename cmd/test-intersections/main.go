package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/dpup/strem/server/internal/lib/crossing"
	"github.com/dpup/strem/server/internal/lib/geo"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	counter := crossing.NewCounter()

	switch command {
	case "count":
		handleCount(counter)
	case "crossings":
		handleCrossings(counter)
	case "scenarios":
		handleScenarios(counter)
	case "help":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

// parseInputs reads the --track and --route flags for a subcommand
func parseInputs(name string) (track, route [][]float64) {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	trackStr := fs.String("track", "", "Track points as \"x,y;x,y;...\"")
	routeStr := fs.String("route", "", "Survey route points as \"x,y;x,y;...\"")

	fs.Parse(os.Args[2:])

	if *trackStr == "" && *routeStr == "" {
		fmt.Println("Example usage:")
		fmt.Printf("  test-intersections %s --track \"0,0;2,2\" --route \"0,2;2,0\"\n", name)
		fmt.Println("  (Two diagonals crossing at (1,1))")
		os.Exit(1)
	}

	track, err := parseCoordinateRows(*trackStr)
	if err != nil {
		log.Fatalf("Error parsing track: %v", err)
	}
	route, err = parseCoordinateRows(*routeStr)
	if err != nil {
		log.Fatalf("Error parsing route: %v", err)
	}
	return track, route
}

func handleCount(counter crossing.Counter) {
	track, route := parseInputs("count")

	count, err := counter.CountRows(track, route)
	if err != nil {
		log.Fatalf("Error counting intersections: %v", err)
	}

	fmt.Printf("Intersection count:\n")
	fmt.Printf("  Track: %d points\n", len(track))
	fmt.Printf("  Survey route: %d points\n", len(route))
	fmt.Printf("  Intersections: %d\n", count)
}

func handleCrossings(counter crossing.Counter) {
	trackRows, routeRows := parseInputs("crossings")

	track, err := geo.PolylineFromRows(trackRows)
	if err != nil {
		log.Fatalf("Invalid track: %v", err)
	}
	route, err := geo.PolylineFromRows(routeRows)
	if err != nil {
		log.Fatalf("Invalid survey route: %v", err)
	}

	crossings := counter.Crossings(track, route)

	fmt.Printf("Crossing segment pairs: %d\n", len(crossings))
	for i, c := range crossings {
		t := track.Segment(c.TrackSegment)
		r := route.Segment(c.RouteSegment)
		fmt.Printf("  %d: track #%d (%g,%g)-(%g,%g) x route #%d (%g,%g)-(%g,%g)\n",
			i+1,
			c.TrackSegment, t.Start.X, t.Start.Y, t.End.X, t.End.Y,
			c.RouteSegment, r.Start.X, r.Start.Y, r.End.X, r.End.Y)
	}
}

// handleScenarios runs the reference scenarios and reports pass/fail
func handleScenarios(counter crossing.Counter) {
	scenarios := []struct {
		name  string
		track string
		route string
		want  int
	}{
		{"diagonals crossing at (1,1)", "0,0;2,2", "0,2;2,0", 1},
		{"disjoint, far apart", "0,0;1,0;2,0", "5,5;6,6", 0},
		{"single point track", "0,0", "0,0;1,1", 0},
		{"collinear overlapping", "0,0;3,0", "2,0;5,0", 1},
		{"collinear non-overlapping", "0,0;1,0", "2,0;3,0", 0},
		{"parallel", "0,0;10,0", "0,1;10,1", 0},
	}

	failed := 0
	for _, s := range scenarios {
		track, _ := parseCoordinateRows(s.track)
		route, _ := parseCoordinateRows(s.route)

		got, err := counter.CountRows(track, route)
		result := "PASS"
		if err != nil || got != s.want {
			result = "FAIL"
			failed++
		}
		fmt.Printf("  [%s] %-28s got=%d want=%d\n", result, s.name, got, s.want)
	}

	if failed > 0 {
		fmt.Printf("%d scenario(s) failed\n", failed)
		os.Exit(1)
	}
	fmt.Printf("All %d scenarios passed\n", len(scenarios))
}

func printUsage() {
	fmt.Printf(`test-intersections - Track/survey route intersection testing tool

USAGE:
    test-intersections <command> [options]

COMMANDS:
    count       Count segment-pair intersections between track and route
    crossings   List the intersecting segment pairs
    scenarios   Run the reference scenarios
    help        Show this help message

EXAMPLES:
    # Two diagonals crossing once
    test-intersections count --track "0,0;2,2" --route "0,2;2,0"

    # Zigzag track over a straight route
    test-intersections crossings --track "0,1;1,-1;2,1;3,-1" --route "-1,0;4,0"

    test-intersections scenarios
`)
}

// parseCoordinateRows parses "x,y;x,y" into coordinate rows.
// Row width is not checked here so the counter reports shape errors itself.
func parseCoordinateRows(coordStr string) ([][]float64, error) {
	coordStr = strings.TrimSpace(coordStr)
	if coordStr == "" {
		return nil, nil
	}

	pairs := strings.Split(coordStr, ";")
	rows := make([][]float64, 0, len(pairs))

	for _, pair := range pairs {
		values := strings.Split(strings.TrimSpace(pair), ",")
		row := make([]float64, 0, len(values))

		for _, v := range values {
			f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err != nil {
				return nil, fmt.Errorf("invalid coordinate %q in %q", v, pair)
			}
			row = append(row, f)
		}
		rows = append(rows, row)
	}

	return rows, nil
}
