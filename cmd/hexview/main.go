// Command hexview dumps, decodes and patches raw bytes of a file.
package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/dustin/go-humanize"

	"github.com/spy16/hexview"
)

var cli struct {
	Verbose  bool `name:"verbose" short:"v" help:"Log source lifecycle events"`
	ReadOnly bool `name:"read-only" help:"Open files without write access"`

	Info InfoCmd `cmd:"" help:"Print size and page information"`
	Dump DumpCmd `cmd:"" help:"Print page(s) as a hex grid"`
	Peek PeekCmd `cmd:"" help:"Decode a little-endian integer at an offset"`
	Poke PokeCmd `cmd:"" help:"Overwrite bytes at an offset"`
}

// globals is bound into every command's Run.
type globals struct {
	opts *hexview.Options
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("hexview"),
		kong.Description("Paged viewer for raw binary files"),
		kong.UsageOnError(),
	)

	opts := hexview.DefaultOptions
	opts.ReadOnly = cli.ReadOnly
	if cli.Verbose {
		opts.Log = log.Printf
	}

	err := ctx.Run(&globals{opts: &opts})
	ctx.FatalIfErrorf(err)
}

// InfoCmd prints size and page information of a file.
type InfoCmd struct {
	File string `arg:"" type:"existingfile" help:"File to inspect"`
	Rows int    `name:"rows" default:"16" help:"Rows per page"`
	Cols int    `name:"cols" default:"16" help:"Bytes per row"`
}

func (c *InfoCmd) Run(g *globals) error {
	return hexview.Use(c.File, g.opts, func(m *hexview.Model) error {
		m.SetGeometry(c.Rows, c.Cols)

		pages := int64(0)
		if span := m.PageSpan(); span > 0 {
			pages = (m.Len() + span - 1) / span
		}

		fmt.Printf("file:  %s\n", m.SourceName())
		fmt.Printf("size:  %s (%d bytes)\n", humanize.IBytes(uint64(m.Len())), m.Len())
		fmt.Printf("pages: %d (%dx%d)\n", pages, c.Rows, c.Cols)
		return nil
	})
}

// DumpCmd prints one or more pages as a hex + ASCII grid.
type DumpCmd struct {
	File   string `arg:"" type:"existingfile" help:"File to dump"`
	Offset int64  `name:"offset" short:"o" help:"Offset to start at"`
	Rows   int    `name:"rows" default:"16" help:"Rows per page"`
	Cols   int    `name:"cols" default:"16" help:"Bytes per row"`
	Pages  int    `name:"pages" short:"n" default:"1" help:"Number of pages"`
	Last   bool   `name:"last" help:"Start at the last page"`
}

func (c *DumpCmd) Run(g *globals) error {
	if c.Cols <= 0 || c.Rows <= 0 {
		return errors.New("rows and cols must be positive")
	}

	return hexview.Use(c.File, g.opts, func(m *hexview.Model) error {
		m.SetGeometry(c.Rows, c.Cols)

		if c.Last {
			m.GoToLastPage()
		} else if c.Offset != 0 && !m.GoTo(c.Offset).Moved {
			return fmt.Errorf("offset %d out of range (size=%s)", c.Offset, humanize.IBytes(uint64(m.Len())))
		}

		for page := 0; page < c.Pages; page++ {
			if page > 0 && !m.SlidePages(1).Moved {
				break
			}
			printPage(os.Stdout, m)
		}
		return nil
	})
}

func printPage(w io.Writer, m *hexview.Model) {
	rows, cols := m.Geometry()
	start := m.CurrentOffset()

	for r := 0; r < rows; r++ {
		lineStart := start + int64(r*cols)
		if lineStart >= m.Len() {
			return
		}

		var hexPart, textPart strings.Builder
		for c := 0; c < cols; c++ {
			b, ok := m.ReadByteAsChar(lineStart + int64(c))
			if !ok {
				hexPart.WriteString("   ")
				continue
			}
			fmt.Fprintf(&hexPart, "%02X ", b)
			if b >= 0x20 && b < 0x7f {
				textPart.WriteByte(b)
			} else {
				textPart.WriteByte('.')
			}
		}
		fmt.Fprintf(w, "%08X  %s |%s|\n", lineStart, hexPart.String(), textPart.String())
	}
}

// PeekCmd decodes one little-endian integer.
type PeekCmd struct {
	File   string `arg:"" type:"existingfile" help:"File to read"`
	Offset int64  `arg:"" help:"Offset of the value"`
	Width  int    `name:"width" short:"w" default:"4" enum:"1,2,4,8" help:"Width in bytes (1,2,4,8)"`
	Hex    bool   `name:"hex" help:"Print as hex"`
}

func (c *PeekCmd) Run(g *globals) error {
	return hexview.Use(c.File, g.opts, func(m *hexview.Model) error {
		if c.Hex {
			s, ok := m.ReadHex(c.Offset, c.Width)
			if !ok {
				return errNoValue(c.Offset, c.Width)
			}
			fmt.Println(s)
			return nil
		}

		v, ok := m.ReadUint(c.Offset, c.Width)
		if !ok {
			return errNoValue(c.Offset, c.Width)
		}
		fmt.Println(v)
		return nil
	})
}

// PokeCmd overwrites bytes and flushes them to the file.
type PokeCmd struct {
	File    string `arg:"" type:"existingfile" help:"File to modify"`
	Offset  int64  `arg:"" help:"Offset to write at"`
	Data    string `arg:"" help:"Bytes to write as hex (e.g. 'deadbeef')"`
	NoFlush bool   `name:"no-flush" help:"Discard the write instead of persisting it"`
}

func (c *PokeCmd) Run(g *globals) error {
	data, err := hex.DecodeString(strings.ReplaceAll(c.Data, " ", ""))
	if err != nil {
		return fmt.Errorf("invalid hex data: %w", err)
	}

	return hexview.Use(c.File, g.opts, func(m *hexview.Model) error {
		if err := m.Write(c.Offset, data); err != nil {
			return err
		}
		if c.NoFlush {
			fmt.Fprintln(os.Stderr, "write discarded (--no-flush)")
			return nil
		}
		if err := m.Flush(); err != nil {
			return err
		}
		fmt.Printf("wrote %s at %08X\n", humanize.IBytes(uint64(len(data))), c.Offset)
		return nil
	})
}

func errNoValue(off int64, width int) error {
	return fmt.Errorf("no %d-byte value at offset %d", width, off)
}
