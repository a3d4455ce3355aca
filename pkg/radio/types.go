// Package radio models the play history returned by the ABC radio search
// API and decodes its JSON wire format into typed records.
package radio

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/MatthewBurke1995/ABC-Radio-Wrapper/pkg/query"
)

// Stations lists the station identifiers known to carry play history.
// The set grows over time, so decoders accept any service_id string.
var Stations = []string{
	"jazz", "dig", "doublej", "unearthed", "country", "triplej", "classic", "kidslisten",
}

// SearchResult is one page of search results plus pagination metadata.
// Total counts every result available for the query across all pages;
// Offset is the index of the first play in this page.
type SearchResult struct {
	Total  int
	Offset int
	Limit  int
	Plays  []Play

	// Params records the search options that produced this page. It is set
	// by the client, not the decoder, so results stay self-describing
	// without any mutable client state.
	Params query.Params
}

// Play is one instance of a track having been played on a station at a
// specific time.
type Play struct {
	// PlayedAt is the original play time, timezone information preserved.
	PlayedAt time.Time

	// Station is the service_id of the station the track was played on,
	// usually one of Stations.
	Station string

	Track Track
}

// Track holds the metadata of a played recording.
type Track struct {
	Title           string
	DurationSeconds int

	// Artists are the performers credited on the resolved release.
	// Empty whenever no release could be resolved.
	Artists []Artist

	// Release is the album/single context the track appeared on, nil when
	// the source provides no resolvable release information.
	Release *Release

	// URL points at the MusicBrainz page for the recording, when known.
	URL *string
}

// Artist is a performer credited on a release.
type Artist struct {
	Name string

	// URL points at the MusicBrainz page for the artist, when known.
	URL *string

	// IsAustralian is rarely supplied by the source with any confidence,
	// so absence decodes to TristateUnknown rather than false.
	IsAustralian Tristate
}

// Release is an album or single a track appeared on.
type Release struct {
	Title   string
	URL     *string
	Year    *int
	Artwork *Artwork
}

// Artwork is the cover art attached to a release. A release may list
// several artwork entries; only the first is decoded.
type Artwork struct {
	// URL is the canonical source image.
	URL string

	// Kind describes the artwork's role, e.g. "cover".
	Kind string

	// Sizes are the rendered variants of the image, possibly empty.
	Sizes []ArtworkSize
}

// ArtworkSize is one rendered variant of an artwork image.
type ArtworkSize struct {
	URL    string
	Width  int
	Height int

	// AspectRatio is encoded by the API as "WxH", e.g. "1x1" or "16x9".
	AspectRatio string
}

// Ratio computes the aspect ratio as width divided by height from the
// encoded "WxH" string.
func (s ArtworkSize) Ratio() (float64, error) {
	w, h, ok := strings.Cut(s.AspectRatio, "x")
	if !ok {
		return 0, fmt.Errorf("malformed aspect ratio %q", s.AspectRatio)
	}
	wr, err := strconv.Atoi(w)
	if err != nil {
		return 0, fmt.Errorf("malformed aspect ratio %q: %v", s.AspectRatio, err)
	}
	hr, err := strconv.Atoi(h)
	if err != nil || hr == 0 {
		return 0, fmt.Errorf("malformed aspect ratio %q", s.AspectRatio)
	}
	return float64(wr) / float64(hr), nil
}
