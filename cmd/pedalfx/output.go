package main

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"text/tabwriter"

	"github.com/cwbudde/algo-pedal/dsp/effects"
	"github.com/cwbudde/algo-pedal/dsp/pedal"
	"github.com/cwbudde/algo-pedal/internal/render"
)

func printList(w io.Writer, reg *pedal.Registry) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Pedal\tRate [Hz]\tDelay [s]\tFeedback\tGain\tDescription\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(tw, "-----\t---------\t---------\t--------\t----\t-----------\n"); err != nil {
		return err
	}
	for _, name := range reg.Names() {
		e, err := reg.Lookup(name)
		if err != nil {
			return err
		}
		l := e.Limits
		if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			name,
			formatRange(l.RateHz),
			formatRange(l.DelaySeconds),
			formatRange(l.Feedback),
			formatRange(l.Gain),
			e.Description,
		); err != nil {
			return err
		}
	}
	return tw.Flush()
}

func formatRange(r effects.Range) string {
	if r.Min == r.Max {
		return "-"
	}
	return fmt.Sprintf("%g..%g", r.Min, r.Max)
}

func printStats(w io.Writer, in, out [][]float64, sampleRate float64) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Channel\tIn RMS\tOut RMS\tOut Peak\tGain [dB]\tModulation [Hz]\n"); err != nil {
		return err
	}
	for ch := range out {
		s, err := render.Analyze(in[ch], out[ch], sampleRate)
		if err != nil {
			return err
		}
		mod := "-"
		if s.ModulationHz > 0 {
			mod = fmt.Sprintf("%.2f", s.ModulationHz)
		}
		if _, err := fmt.Fprintf(tw, "%d\t%.4f\t%.4f\t%.4f\t%+.2f\t%s\n",
			ch, s.InputRMS, s.OutputRMS, s.OutputPeak, s.GainDB, mod); err != nil {
			return err
		}
	}
	return tw.Flush()
}

// encodeFloat32 writes planar channels as interleaved little-endian float32.
func encodeFloat32(w io.Writer, out [][]float64) error {
	bw := bufio.NewWriter(w)
	var b [4]byte
	for i := range out[0] {
		for ch := range out {
			binary.LittleEndian.PutUint32(b[:], math.Float32bits(float32(out[ch][i])))
			if _, err := bw.Write(b[:]); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}
