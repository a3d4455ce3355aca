package radio

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"time"
)

// Wire-format shapes of the search endpoint. Required fields use pointers
// so that absence is distinguishable from a zero value; composite values
// stay raw until their own decoder runs, which keeps failure reporting
// scoped to the entity that actually broke.
type pageWire struct {
	Total  *int               `json:"total"`
	Offset *int               `json:"offset"`
	Limit  *int               `json:"limit"`
	Items  *[]json.RawMessage `json:"items"`
}

type itemWire struct {
	PlayedTime *string         `json:"played_time"`
	ServiceID  *string         `json:"service_id"`
	Recording  json.RawMessage `json:"recording"`
	Release    json.RawMessage `json:"release"`
}

type recordingWire struct {
	Title    *string           `json:"title"`
	Duration *int              `json:"duration"`
	Links    []linkWire        `json:"links"`
	Releases []json.RawMessage `json:"releases"`
}

type releaseWire struct {
	Title       *string            `json:"title"`
	Links       []linkWire         `json:"links"`
	ReleaseYear json.RawMessage    `json:"release_year"`
	Artwork     []json.RawMessage  `json:"artwork"`
	Artists     *[]json.RawMessage `json:"artists"`
}

type artistWire struct {
	Name         *string    `json:"name"`
	Links        []linkWire `json:"links"`
	IsAustralian *bool      `json:"is_australian"`
}

type artworkWire struct {
	URL   *string           `json:"url"`
	Type  *string           `json:"type"`
	Sizes []json.RawMessage `json:"sizes"`
}

type artworkSizeWire struct {
	URL         *string `json:"url"`
	Width       *int    `json:"width"`
	Height      *int    `json:"height"`
	AspectRatio *string `json:"aspect_ratio"`
}

type linkWire struct {
	URL string `json:"url"`
}

// DecodeSearchResult decodes one response body of the search endpoint.
// Decoding is deterministic and touches neither clock nor network; the
// same body always yields a structurally equal result.
func DecodeSearchResult(data []byte) (*SearchResult, error) {
	var page pageWire
	if err := json.Unmarshal(data, &page); err != nil {
		return nil, wireError("SearchResult", err)
	}
	switch {
	case page.Total == nil:
		return nil, decodeErrorf("SearchResult", "total", nil)
	case page.Offset == nil:
		return nil, decodeErrorf("SearchResult", "offset", nil)
	case page.Limit == nil:
		return nil, decodeErrorf("SearchResult", "limit", nil)
	case page.Items == nil:
		return nil, decodeErrorf("SearchResult", "items", nil)
	}

	plays := make([]Play, 0, len(*page.Items))
	for _, raw := range *page.Items {
		play, err := decodePlay(raw)
		if err != nil {
			return nil, err
		}
		plays = append(plays, play)
	}

	return &SearchResult{
		Total:  *page.Total,
		Offset: *page.Offset,
		Limit:  *page.Limit,
		Plays:  plays,
	}, nil
}

// decodePlay decodes one element of the items array.
func decodePlay(raw json.RawMessage) (Play, error) {
	var item itemWire
	if err := json.Unmarshal(raw, &item); err != nil {
		return Play{}, wireError("Play", err)
	}
	if item.PlayedTime == nil {
		return Play{}, decodeErrorf("Play", "played_time", nil)
	}
	playedAt, err := time.Parse(time.RFC3339, *item.PlayedTime)
	if err != nil {
		// Never substitute the current time here: a fabricated timestamp
		// is worse than a loud failure.
		return Play{}, decodeErrorf("Play", "played_time", err)
	}
	if item.ServiceID == nil {
		return Play{}, decodeErrorf("Play", "service_id", nil)
	}

	track, err := decodeTrack(item)
	if err != nil {
		return Play{}, err
	}

	return Play{
		PlayedAt: playedAt,
		Station:  *item.ServiceID,
		Track:    track,
	}, nil
}

// decodeTrack decodes the recording metadata of an item, resolving release
// and artist information through the documented fallback locations.
func decodeTrack(item itemWire) (Track, error) {
	if isEmptyJSON(item.Recording) {
		return Track{}, decodeErrorf("Track", "recording", nil)
	}
	var rec recordingWire
	if err := json.Unmarshal(item.Recording, &rec); err != nil {
		return Track{}, wireError("Track", err)
	}
	if rec.Title == nil {
		return Track{}, decodeErrorf("Track", "recording.title", nil)
	}
	if rec.Duration == nil {
		return Track{}, decodeErrorf("Track", "recording.duration", nil)
	}

	release, artists := resolveRelease(item.Release, rec.Releases)

	return Track{
		Title:           *rec.Title,
		DurationSeconds: *rec.Duration,
		Artists:         artists,
		Release:         release,
		URL:             firstLinkURL(rec.Links),
	}, nil
}

// resolveRelease picks the track's release document from its candidate
// locations: the item-level release key first, then recording.releases[0]
// when the first is absent or empty. Release information is known-flaky,
// so a candidate that fails to decode yields (nil, nil) rather than an
// error; artists live alongside the release and are dropped with it.
func resolveRelease(direct json.RawMessage, nested []json.RawMessage) (*Release, []Artist) {
	var nestedFirst json.RawMessage
	if len(nested) >= 1 {
		nestedFirst = nested[0]
	}
	raw := firstCandidate(direct, nestedFirst)
	if raw == nil {
		return nil, nil
	}
	release, artists, err := decodeRelease(raw)
	if err != nil {
		return nil, nil
	}
	return release, artists
}

// firstCandidate returns the first candidate that holds a usable JSON
// document, or nil when every location is absent, null, or empty.
func firstCandidate(candidates ...json.RawMessage) json.RawMessage {
	for _, c := range candidates {
		if !isEmptyJSON(c) {
			return c
		}
	}
	return nil
}

// decodeRelease decodes a release document together with the artists
// credited on it.
func decodeRelease(raw json.RawMessage) (*Release, []Artist, error) {
	var rel releaseWire
	if err := json.Unmarshal(raw, &rel); err != nil {
		return nil, nil, wireError("Release", err)
	}
	if rel.Title == nil {
		return nil, nil, decodeErrorf("Release", "title", nil)
	}
	year, err := parseYear(rel.ReleaseYear)
	if err != nil {
		return nil, nil, decodeErrorf("Release", "release_year", err)
	}

	// Only the first artwork entry is decoded; an empty list is normal.
	var artwork *Artwork
	if len(rel.Artwork) >= 1 {
		artwork, err = decodeArtwork(rel.Artwork[0])
		if err != nil {
			return nil, nil, err
		}
	}

	if rel.Artists == nil {
		return nil, nil, decodeErrorf("Release", "artists", nil)
	}
	artists := make([]Artist, 0, len(*rel.Artists))
	for _, rawArtist := range *rel.Artists {
		artist, err := decodeArtist(rawArtist)
		if err != nil {
			return nil, nil, err
		}
		artists = append(artists, artist)
	}

	return &Release{
		Title:   *rel.Title,
		URL:     firstLinkURL(rel.Links),
		Year:    year,
		Artwork: artwork,
	}, artists, nil
}

// decodeArtist decodes one credited artist.
func decodeArtist(raw json.RawMessage) (Artist, error) {
	var artist artistWire
	if err := json.Unmarshal(raw, &artist); err != nil {
		return Artist{}, wireError("Artist", err)
	}
	if artist.Name == nil {
		return Artist{}, decodeErrorf("Artist", "name", nil)
	}
	return Artist{
		Name:         *artist.Name,
		URL:          firstLinkURL(artist.Links),
		IsAustralian: tristateOf(artist.IsAustralian),
	}, nil
}

// decodeArtwork decodes one artwork entry and its size variants.
func decodeArtwork(raw json.RawMessage) (*Artwork, error) {
	var art artworkWire
	if err := json.Unmarshal(raw, &art); err != nil {
		return nil, wireError("Artwork", err)
	}
	if art.URL == nil {
		return nil, decodeErrorf("Artwork", "url", nil)
	}
	if art.Type == nil {
		return nil, decodeErrorf("Artwork", "type", nil)
	}

	sizes := make([]ArtworkSize, 0, len(art.Sizes))
	for _, rawSize := range art.Sizes {
		size, err := decodeArtworkSize(rawSize)
		if err != nil {
			return nil, err
		}
		sizes = append(sizes, size)
	}

	return &Artwork{
		URL:   *art.URL,
		Kind:  *art.Type,
		Sizes: sizes,
	}, nil
}

// decodeArtworkSize decodes one image size variant.
func decodeArtworkSize(raw json.RawMessage) (ArtworkSize, error) {
	var size artworkSizeWire
	if err := json.Unmarshal(raw, &size); err != nil {
		return ArtworkSize{}, wireError("ArtworkSize", err)
	}
	switch {
	case size.URL == nil:
		return ArtworkSize{}, decodeErrorf("ArtworkSize", "url", nil)
	case size.Width == nil || *size.Width <= 0:
		return ArtworkSize{}, decodeErrorf("ArtworkSize", "width", nil)
	case size.Height == nil || *size.Height <= 0:
		return ArtworkSize{}, decodeErrorf("ArtworkSize", "height", nil)
	case size.AspectRatio == nil:
		return ArtworkSize{}, decodeErrorf("ArtworkSize", "aspect_ratio", nil)
	}
	return ArtworkSize{
		URL:         *size.URL,
		Width:       *size.Width,
		Height:      *size.Height,
		AspectRatio: *size.AspectRatio,
	}, nil
}

// firstLinkURL extracts the external URL shared pattern: the first
// element's url when the links array is non-empty, otherwise nil. Artist,
// Release, and Track links all follow it.
func firstLinkURL(links []linkWire) *string {
	if len(links) >= 1 && links[0].URL != "" {
		url := links[0].URL
		return &url
	}
	return nil
}

// parseYear decodes the release_year field, which the API serves as a
// number, a numeric string, null, or not at all.
func parseYear(raw json.RawMessage) (*int, error) {
	if isEmptyJSON(raw) {
		return nil, nil
	}
	var n int
	if err := json.Unmarshal(raw, &n); err == nil {
		return &n, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, err
	}
	if s == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// isEmptyJSON reports whether raw holds no usable document: absent, null,
// or an empty object/array/string.
func isEmptyJSON(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	switch string(trimmed) {
	case "", "null", "{}", "[]", `""`:
		return true
	}
	return false
}

// wireError maps a json unmarshal failure to a DecodeError, keeping the
// offending field name when the json package reports one.
func wireError(entity string, err error) *DecodeError {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return decodeErrorf(entity, typeErr.Field, err)
	}
	return decodeErrorf(entity, "body", err)
}
