package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-json"
	"github.com/mattn/go-runewidth"

	"github.com/vanderheijden86/ptour/pkg/tour"
)

// pageInfo is the machine readable form of a page.
type pageInfo struct {
	Index       int      `json:"index"`
	ID          string   `json:"id"`
	Kind        string   `json:"kind"`
	Summary     string   `json:"summary"`
	Explanation string   `json:"explanation,omitempty"`
	ImageURI    string   `json:"image_uri,omitempty"`
	Compatibles []string `json:"compatibles,omitempty"`
}

func pageInfos(pages tour.Sequence) []pageInfo {
	infos := make([]pageInfo, len(pages))
	for i, p := range pages {
		info := pageInfo{
			Index:       i,
			ID:          p.ID,
			Kind:        tour.KindPage,
			Summary:     p.Summary,
			Explanation: strings.TrimSpace(p.Explanation),
			ImageURI:    p.ImageURI,
		}
		if p.IsHardware() {
			info.Kind = tour.KindHardware
			info.Compatibles = p.Hardware.Compatibles()
		}
		infos[i] = info
	}
	return infos
}

func writePagesJSON(w io.Writer, pages tour.Sequence) error {
	data, err := json.MarshalIndent(pageInfos(pages), "", "  ")
	if err != nil {
		return fmt.Errorf("encoding pages: %w", err)
	}
	_, err = fmt.Fprintf(w, "%s\n", data)
	return err
}

// writePages prints one line per page: position, ID, kind and summary.
func writePages(w io.Writer, pages tour.Sequence) error {
	infos := pageInfos(pages)

	idWidth := runewidth.StringWidth("ID")
	for _, info := range infos {
		idWidth = max(idWidth, runewidth.StringWidth(info.ID))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%-3s %s %-8s %s\n", "#", runewidth.FillRight("ID", idWidth), "KIND", "SUMMARY")
	for _, info := range infos {
		fmt.Fprintf(&b, "%-3d %s %-8s %s\n", info.Index+1, runewidth.FillRight(info.ID, idWidth), info.Kind, info.Summary)
	}
	_, err := io.WriteString(w, b.String())
	return err
}
