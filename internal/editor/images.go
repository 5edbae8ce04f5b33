package editor

import (
	"context"
	"fmt"
	"image"
	"net/http"
	"os"
	"strings"
	"time"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"pinboard-cli/internal/board"
)

// Generation tags an async image decode. Apply the result only while the
// tag still matches; Reset-style operations bump it.
func (s *Session) Generation() int { return s.generation }

// SetNaturalSize records a decoded image's intrinsic size on the pin,
// outside history (sizing metadata is not an undoable edit). Stale
// results from a previous generation are dropped.
func (s *Session) SetNaturalSize(pinID string, gen int, width, height float64) {
	if gen != s.generation || width <= 0 || height <= 0 {
		return
	}
	s.Preview(func(draft *board.State) *board.State {
		p := draft.FindPin(pinID)
		if p == nil || p.Kind != board.KindImage {
			return draft
		}
		p.NaturalWidth = width
		p.NaturalHeight = height
		return draft
	})
}

// DecodeImageSize reads just enough of src (a file path or http(s) URL)
// to learn the image's dimensions.
func DecodeImageSize(ctx context.Context, src string) (width, height float64, err error) {
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		return decodeRemote(ctx, src)
	}
	f, err := os.Open(src)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()
	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, fmt.Errorf("decode %s: %w", src, err)
	}
	return float64(cfg.Width), float64(cfg.Height), nil
}

func decodeRemote(ctx context.Context, url string) (float64, float64, error) {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, 0, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return 0, 0, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return 0, 0, fmt.Errorf("fetch %s: %s", url, resp.Status)
	}
	cfg, _, err := image.DecodeConfig(resp.Body)
	if err != nil {
		return 0, 0, fmt.Errorf("decode %s: %w", url, err)
	}
	return float64(cfg.Width), float64(cfg.Height), nil
}
