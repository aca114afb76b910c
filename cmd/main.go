package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"formalizer/internal/config"
	"formalizer/internal/ingest"
	"formalizer/internal/substitute"
	"formalizer/pkg/options"
)

func main() {
	cfg := config.FromEnv()

	in := flag.String("in", "-", "input file (.txt, .html, .pdf) or - for stdin")
	out := flag.String("out", "", "output file, stdout when empty")
	modeName := flag.String("mode", cfg.DefaultMode, "very_informal, informal, formal, very_formal or none")
	variantName := flag.String("variant", "mode", "mode or improve")
	pages := flag.Int("pages", ingest.DefaultMaxPages, "maximum PDF pages to read")
	agree := flag.Bool("agreement", false, "fix determiner gender after noun replacements")
	whole := flag.Bool("whole", false, "treat the input as a single line")
	strip := flag.Bool("strip-accents", false, "remove accents before processing")
	changes := flag.Bool("changes", false, "print every rewrite to stderr")
	flag.Parse()

	mode, err := substitute.ParseMode(*modeName)
	if err != nil {
		log.Fatalf("%v", err)
	}
	variant, ok := options.ParseVariant(*variantName)
	if !ok {
		log.Fatalf("unknown variant %q", *variantName)
	}
	cfg.DefaultMode = mode.String()

	var text string
	if *in == "-" {
		text, err = ingest.Reader(os.Stdin)
	} else {
		text, err = ingest.Load(*in, ingest.Options{MaxPages: *pages})
	}
	if err != nil {
		log.Fatalf("read input: %v", err)
	}

	comp, err := config.Assemble(context.Background(), cfg, log.Default())
	if err != nil {
		log.Fatalf("init error: %v", err)
	}
	defer comp.Close()

	opts := []options.Options{options.WithVariant(variant)}
	if variant == options.VariantImprove {
		opts = append(opts, options.WithImproveVariant())
	}
	if *agree {
		opts = append(opts, options.WithAgreement())
	}
	if *whole {
		opts = append(opts, options.WithWholeText())
	}
	if *strip {
		opts = append(opts, options.WithStripAccents())
	}
	p, err := comp.Pipeline(opts...)
	if err != nil {
		log.Fatalf("init error: %v", err)
	}

	res := p.Process(text, mode)
	if *changes {
		for _, c := range res.Changes {
			fmt.Fprintf(os.Stderr, "line %d token %d %-11s %q -> %q\n", c.Line+1, c.Index, c.Stage, c.Before, c.After)
		}
	}

	if *out == "" {
		fmt.Print(res.Output)
		if !strings.HasSuffix(res.Output, "\n") {
			fmt.Println()
		}
		return
	}
	if err := os.WriteFile(*out, []byte(res.Output), 0o644); err != nil {
		log.Fatalf("write output: %v", err)
	}
}
