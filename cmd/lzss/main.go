// The lzss command compresses and decompresses files.
//
// Usage:
//
//	lzss compress <input> [output]
//	lzss decompress <input> [output]
//
// If the output path is omitted, compressing appends ".lzss" to the input
// path and decompressing strips it (or appends ".out" if it isn't there).
package main

import (
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"strings"

	"github.com/andybalholm/lzss"
)

func main() {
	if len(os.Args) < 3 {
		fmt.Fprintf(os.Stderr, "Usage: %s <compress|decompress> <input> [output]\n", os.Args[0])
		os.Exit(1)
	}
	command, input := os.Args[1], os.Args[2]

	var output string
	if len(os.Args) > 3 {
		output = os.Args[3]
	} else if command == "compress" {
		output = input + ".lzss"
	} else if strings.HasSuffix(input, ".lzss") {
		output = strings.TrimSuffix(input, ".lzss")
	} else {
		output = input + ".out"
	}

	var err error
	switch command {
	case "compress":
		err = compressFile(input, output)
	case "decompress":
		err = decompressFile(input, output)
	default:
		fmt.Fprintln(os.Stderr, "invalid command; use 'compress' or 'decompress'")
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func compressFile(inPath, outPath string) error {
	data, err := ioutil.ReadFile(inPath)
	if err != nil {
		return err
	}

	compressed := lzss.Compress(nil, data)
	if err := ioutil.WriteFile(outPath, compressed, 0666); err != nil {
		return err
	}

	ratio := 100.0
	if len(data) > 0 {
		ratio = float64(len(compressed)) / float64(len(data)) * 100
	}
	fmt.Printf("%s: %d bytes -> %d bytes (%.1f%% of original)\n",
		outPath, len(data), len(compressed), ratio)
	return nil
}

func decompressFile(inPath, outPath string) error {
	in, err := os.Open(inPath)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(outPath)
	if err != nil {
		return err
	}

	n, err := io.Copy(out, lzss.NewReader(in))
	if err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	fmt.Printf("%s: %d bytes\n", outPath, n)
	return nil
}
