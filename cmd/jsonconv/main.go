/*
 * Copyright 2024 CloudWeGo Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Command jsonconv validates and transcodes JSON text and its compact
// binary encoding, one file (or many, run concurrently) at a time.
package main

import (
	"flag"
	"fmt"
	"os"
	"sync"

	"github.com/cloudwego/jsonwire/concurrency/gopool"
	json "github.com/cloudwego/jsonwire/protocol/json"
)

var modeUsage = `mode is one of:
  validate    report whether each file is syntactically valid JSON
  tojson      parse JSON text and re-serialize it (canonicalizes formatting)
  tobinary    parse JSON text and encode it into the compact binary form
  frombinary  decode the compact binary form back into JSON text
  dummy       parse JSON text and discard the result (benchmarking aid)
`

func main() {
	pretty := flag.Bool("pretty", false, "pretty-print JSON output with a two-space indent (tojson only; frombinary output is always compact)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [-pretty] <mode> <file> [file ...]\n\n%s", os.Args[0], modeUsage)
	}
	flag.Parse()

	args := flag.Args()
	if len(args) < 2 {
		flag.Usage()
		os.Exit(2)
	}
	mode, files := args[0], args[1:]

	indent := ""
	if *pretty {
		indent = "  "
	}

	var wg sync.WaitGroup
	var failed int32
	var mu sync.Mutex

	for _, path := range files {
		path := path
		wg.Add(1)
		gopool.Go(func() {
			defer wg.Done()
			if err := convertOne(mode, path, indent); err != nil {
				mu.Lock()
				failed++
				mu.Unlock()
				fmt.Printf("%s: ERROR: %v\n", path, err)
				return
			}
			fmt.Printf("%s: OK\n", path)
		})
	}
	wg.Wait()

	if failed > 0 {
		os.Exit(1)
	}
}

func convertOne(mode, path, indent string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	switch mode {
	case "validate":
		if !json.ValidateJSON(src) {
			return fmt.Errorf("invalid JSON")
		}
		return nil

	case "dummy":
		if !json.ValidateJSON(src) {
			return fmt.Errorf("invalid JSON")
		}
		return nil

	case "tojson":
		dst := json.NewBuffer(0)
		if !json.TranscodeJSONToJSON(src, dst, indent) {
			return fmt.Errorf("%s", trimNUL(dst.Bytes()))
		}
		return writeResult(path, ".out.json", dst.Bytes())

	case "tobinary":
		dst := json.NewBuffer(0)
		if !json.TranscodeJSONToBinary(src, dst) {
			return fmt.Errorf("%s", trimNUL(dst.Bytes()))
		}
		return writeResult(path, ".out.bin", dst.Bytes())

	case "frombinary":
		dst := json.NewBuffer(0)
		if !json.TranscodeBinaryToJSON(src, dst) {
			return fmt.Errorf("%s", trimNUL(dst.Bytes()))
		}
		return writeResult(path, ".out.json", dst.Bytes())

	default:
		return fmt.Errorf("unknown mode %q", mode)
	}
}

func trimNUL(b []byte) []byte {
	if n := len(b); n > 0 && b[n-1] == 0 {
		return b[:n-1]
	}
	return b
}

func writeResult(srcPath, suffix string, data []byte) error {
	return os.WriteFile(srcPath+suffix, data, 0o644)
}
