package gpt

import (
	"fmt"
	"io"
	"math"

	"github.com/apex/log"
	"github.com/fatih/color"

	"gptdump/internal/mbr"
	"gptdump/internal/probe"
)

// Source is a seekable byte source holding a GPT.
type Source interface {
	io.ReadSeeker
	io.ReaderAt
}

// Options controls what a Dumper prints.
type Options struct {
	// Verbose prints unused entry slots too.
	Verbose bool
	// Symbol prints names for known GUIDs.
	Symbol bool
	// NoAlt skips the secondary header and entry table.
	NoAlt bool
	// MBR prints the boot record in LBA 0 first.
	MBR bool
	// Probe prints the filesystem found at each used partition.
	Probe bool
	// Color makes section titles bold.
	Color bool
}

// Dumper prints the GPT of src to w.
type Dumper struct {
	src   Source
	w     io.Writer
	opts  Options
	title *color.Color
}

// NewDumper returns a Dumper reading src and writing to w.
func NewDumper(src Source, w io.Writer, opts Options) *Dumper {
	title := color.New(color.Bold)
	if opts.Color {
		title.EnableColor()
	} else {
		title.DisableColor()
	}
	return &Dumper{
		src:   src,
		w:     w,
		opts:  opts,
		title: title,
	}
}

// Dump prints the primary header, the secondary header, the primary entries
// and the secondary entries, stopping at the first error.
func (d *Dumper) Dump() error {
	if err := CheckHost(); err != nil {
		return err
	}

	if d.opts.MBR {
		if err := d.section("protective mbr", false); err != nil {
			return err
		}
		if err := d.DumpMBR(); err != nil {
			return err
		}
	}

	if err := d.section("primary header", d.opts.MBR); err != nil {
		return err
	}
	primary, err := d.DumpHeader(PrimaryHeaderLBA)
	if err != nil {
		return err
	}

	var secondary *Header
	if !d.opts.NoAlt {
		if err := d.section("secondary header", true); err != nil {
			return err
		}
		if secondary, err = d.DumpHeader(primary.AlternateLBA); err != nil {
			return err
		}
	}

	if err := d.section("primary entries", true); err != nil {
		return err
	}
	if _, err := d.DumpEntries(primary); err != nil {
		return err
	}

	if !d.opts.NoAlt {
		if err := d.section("secondary entries", true); err != nil {
			return err
		}
		if _, err := d.DumpEntries(secondary); err != nil {
			return err
		}
	}
	return nil
}

func (d *Dumper) section(name string, blank bool) error {
	if blank {
		if _, err := fmt.Fprintln(d.w); err != nil {
			return err
		}
	}
	_, err := d.title.Fprintln(d.w, name)
	return err
}

// DumpHeader reads the header at lba and prints its fields.
func (d *Dumper) DumpHeader(lba uint64) (*Header, error) {
	h, err := ReadHeader(d.src, lba)
	if err != nil {
		return nil, err
	}
	if !h.HasSignature() {
		log.WithField("lba", lba).Warnf("unexpected header signature %q", h.Signature[:])
	}
	if _, err := io.WriteString(d.w, h.Format(d.opts.Symbol)); err != nil {
		return nil, err
	}
	return h, nil
}

// DumpEntries walks the entry table of h and prints every used slot, and
// with Verbose every unused one.
func (d *Dumper) DumpEntries(h *Header) (TableStats, error) {
	if _, err := fmt.Fprintf(d.w, "%-3s %-36s %-36s %-16s %-16s %-16s name\n",
		"#", "type", "uniq", "lba_start", "lba_end", "attr"); err != nil {
		return TableStats{}, err
	}

	stats, err := WalkEntries(d.src, h, func(index int, e Entry) error {
		if e.IsUnused() && !d.opts.Verbose {
			return nil
		}
		name, err := e.DisplayName()
		if err != nil {
			return fmt.Errorf("entry %d: %w", index, err)
		}
		if _, err := fmt.Fprintf(d.w, "%-3d %-36s %-36s %016x %016x %016x %s\n",
			index,
			ResolveDisplayUUID(e.Type, d.opts.Symbol),
			ResolveDisplayUUID(e.Instance, d.opts.Symbol),
			e.FirstLBA,
			e.LastLBA,
			e.Attributes,
			name,
		); err != nil {
			return err
		}
		if d.opts.Probe && !e.IsUnused() {
			return d.probe(e)
		}
		return nil
	})
	if err != nil {
		return stats, err
	}

	log.WithFields(log.Fields{
		"used":    stats.Used,
		"unused":  stats.Unused,
		"sectors": stats.Sectors,
	}).Debug("entry table done")
	return stats, nil
}

func (d *Dumper) probe(e Entry) error {
	fs := probe.Unknown
	if e.FirstLBA != 0 && e.FirstLBA <= math.MaxInt64/SectorSize {
		fs = probe.Detect(d.src, int64(e.FirstLBA)*SectorSize)
	}
	_, err := fmt.Fprintf(d.w, "    fs = %s\n", fs)
	return err
}

// DumpMBR prints the boot record in LBA 0. A missing boot signature or
// protective record is reported but is not an error.
func (d *Dumper) DumpMBR() error {
	m, err := mbr.Read(d.src)
	if err != nil {
		return err
	}
	if !m.Valid() {
		log.Warnf("boot signature missing (found %#04x)", m.Signature)
	}
	if !m.IsProtective() {
		log.Warn("no protective partition record in LBA 0")
	}

	if _, err := fmt.Fprintf(d.w, "signature = 0x%04x\n", m.Signature); err != nil {
		return err
	}
	for i, p := range m.Partitions {
		if p.IsEmpty() {
			continue
		}
		kind := ""
		switch {
		case p.Type == mbr.ProtectiveType:
			kind = " (protective)"
		case p.IsExtended():
			kind = " (extended)"
		}
		if _, err := fmt.Fprintf(d.w, "%-3d type=0x%02x%s status=0x%02x first=0x%08x sectors=0x%08x\n",
			i, p.Type, kind, p.Status, p.FirstSector, p.Sectors); err != nil {
			return err
		}
	}
	protective := "no"
	if m.IsProtective() {
		protective = "yes"
	}
	_, err = fmt.Fprintf(d.w, "protective = %s\n", protective)
	return err
}
