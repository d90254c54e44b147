/*
NAME
  pmdlint

DESCRIPTION
  pmdlint is a demo command that reads a Professional Metadata XML
  document and re-emits it as a single KLV frame, exercising the XML
  reader, the model, and the KLV encoder end to end the way cmd/rv
  exercises revid. It is a demo binary, not part of the library core.

AUTHOR
  Saxon Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package pmdlint is a demo binary: read Professional Metadata XML, emit
// a KLV frame.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/ausocean/utils/logging"

	"github.com/ausocean/pmd/klv"
	"github.com/ausocean/pmd/model"
	"github.com/ausocean/pmd/xmlcodec"
)

func main() {
	in := flag.String("in", "", "path to a Professional Metadata XML document")
	out := flag.String("out", "", "path to write the resulting KLV frame (default: stdout)")
	strict := flag.Bool("strict", true, "reject presentation-config mismatches instead of warning")
	flag.Parse()

	log := logging.New(logging.Info, os.Stderr, false)

	if *in == "" {
		fmt.Fprintln(os.Stderr, "pmdlint: -in is required")
		os.Exit(2)
	}

	data, err := os.ReadFile(*in)
	if err != nil {
		log.Fatal("could not read input", "error", err.Error())
	}

	m := model.New(model.DefaultConstraints(), model.WithLogger(log))
	opts := xmlcodec.ReadOptions{
		Strict: *strict,
		ErrorCallback: func(line int, path string, err error) {
			log.Warning("xml decode warning", "line", line, "path", path, "error", err.Error())
		},
	}
	if err := xmlcodec.Read(data, m, opts); err != nil {
		log.Fatal("could not decode XML", "error", err.Error())
	}

	frame := klv.Encode(m, klv.NewRotator(), klv.EncodeOptions{Label: klv.LabelST2109})

	if *out == "" {
		if _, err := os.Stdout.Write(frame); err != nil {
			log.Fatal("could not write frame", "error", err.Error())
		}
		return
	}
	if err := os.WriteFile(*out, frame, 0o644); err != nil {
		log.Fatal("could not write frame", "error", err.Error())
	}
}
