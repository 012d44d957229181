package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"vellum/config"
	"vellum/edge"
	"vellum/editor"
	"vellum/export"
	"vellum/shape"
	"vellum/terminal"
	"vellum/validation"
)

func main() {
	var (
		interactive = flag.Bool("i", false, "Interactive terminal mode")
		format      = flag.String("format", "json", "Export format: json, svg, png")
		outputFile  = flag.String("o", "", "Output file (default: stdout)")
		configPath  = flag.String("config", "", "Config file (default: search standard locations)")
		validate    = flag.Bool("validate", false, "Validate the document and report issues")
		sample      = flag.Bool("sample", false, "Start from a small sample document")
		help        = flag.Bool("help", false, "Show help")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] [diagram.json]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "An interactive diagram editor core with JSON, SVG and PNG export.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s -i diagram.json            # Edit diagram in the terminal\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -format svg diagram.json   # Export to SVG on stdout\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -format png -o out.png diagram.json\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -sample -i                 # Play with a sample document\n", os.Args[0])
	}
	flag.Parse()

	if *help {
		flag.Usage()
		return
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	ed := editor.New(cfg.EditorOptions())

	filename := flag.Arg(0)
	if filename != "" {
		data, err := os.ReadFile(filename)
		if err != nil {
			log.Fatalf("read %s: %v", filename, err)
		}
		if *validate {
			reportIssues(data)
		}
		if err := ed.Load(data); err != nil {
			log.Fatalf("load %s: %v", filename, err)
		}
	} else if *sample {
		buildSample(ed)
	}

	if *interactive {
		if err := terminal.Run(ed, filename); err != nil {
			log.Fatalf("terminal: %v", err)
		}
		return
	}

	f, err := export.ParseFormat(*format)
	if err != nil {
		log.Fatal(err)
	}
	exporter, err := export.NewExporter(f)
	if err != nil {
		log.Fatal(err)
	}
	out, err := exporter.Export(ed)
	if err != nil {
		log.Fatalf("export: %v", err)
	}

	if *outputFile != "" {
		if err := os.WriteFile(*outputFile, out, 0644); err != nil {
			log.Fatalf("write %s: %v", *outputFile, err)
		}
		return
	}
	os.Stdout.Write(out)
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFromPath(path)
	}
	cfg, _, err := config.Load()
	return cfg, err
}

// reportIssues validates the raw document and prints findings to stderr.
// Issues are informational; the tolerant loader skips what it cannot use.
func reportIssues(data []byte) {
	var doc editor.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		log.Fatalf("validate: %v", err)
	}
	for _, issue := range validation.New().Validate(doc) {
		fmt.Fprintln(os.Stderr, issue)
	}
}

// buildSample populates the editor with a small connected document.
func buildSample(ed *editor.Editor) {
	a := ed.AddNode(shape.Config{
		X: 40, Y: 60, Width: 120, Height: 60,
		Kind: shape.KindRect, Label: "ingest",
		Ports: []shape.PortConfig{{Name: "out", Side: shape.SideRight, Offset: 0.5}},
	})
	b := ed.AddNode(shape.Config{
		X: 300, Y: 60, Width: 120, Height: 60,
		Kind: shape.KindDiamond, Label: "route",
		Ports: []shape.PortConfig{
			{Name: "in", Side: shape.SideLeft, Offset: 0.5},
			{Name: "out", Side: shape.SideBottom, Offset: 0.5},
		},
	})
	c := ed.AddNode(shape.Config{
		X: 300, Y: 260, Width: 120, Height: 60,
		Kind: shape.KindEllipse, Label: "store",
		Ports: []shape.PortConfig{{Name: "in", Side: shape.SideTop, Offset: 0.5}},
	})
	ed.AddLink(
		edge.PortRef{ShapeID: a.ID(), PortID: a.Ports()[0].ID},
		edge.PortRef{ShapeID: b.ID(), PortID: b.Ports()[0].ID},
		edge.Config{Kind: edge.KindCurved, Label: "events"},
	)
	ed.AddLink(
		edge.PortRef{ShapeID: b.ID(), PortID: b.Ports()[1].ID},
		edge.PortRef{ShapeID: c.ID(), PortID: c.Ports()[0].ID},
		edge.Config{Kind: edge.KindOrthogonal},
	)
}
