package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/avagen/avagen/pkg/avagen"
	"github.com/avagen/avagen/pkg/cache"
	"github.com/avagen/avagen/pkg/errors"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVariants(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"variants": avagen.Variants()})
}

func (s *Server) handlePalette(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	palette, err := avagen.PaletteByName(name)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"name": name, "colors": palette})
}

// handleAvatar renders an avatar as PNG. Only seeded requests are cached:
// an unseeded request draws fresh randomness every time, so serving a
// cached copy would change its semantics.
func (s *Server) handleAvatar(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	variant, err := avagen.ParseVariant(chi.URLParam(r, "variant"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	cfg, keyOpts, err := avatarConfigFromQuery(r.URL.Query())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	cacheable := cfg.Seed != nil
	key := s.keyer.AvatarKey(string(variant), keyOpts)

	if cacheable {
		if data, hit, err := s.cache.Get(ctx, key); err == nil && hit {
			servePNG(w, data, "HIT")
			return
		}
	}

	img, err := avagen.Generate(variant, cfg)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := avagen.EncodePNG(&buf, img); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInternal, err, "failed to encode avatar"))
		return
	}
	servePNG(w, buf.Bytes(), "MISS")

	if cacheable {
		s.storeAsync(key, buf.Bytes())
	}
}

// storeAsync writes a rendered avatar to the cache off the request path.
// Failures are logged and otherwise ignored.
func (s *Server) storeAsync(key string, data []byte) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		err := cache.RetryWithBackoff(ctx, func() error {
			return s.cache.Set(ctx, key, data, s.ttl)
		})
		if err != nil {
			s.logger.Warn("failed to cache avatar", "key", key, "err", err)
		}
	}()
}

// avatarConfigFromQuery maps query parameters onto a generation config and
// the matching cache key options.
func avatarConfigFromQuery(q url.Values) (avagen.Config, cache.AvatarKeyOpts, error) {
	var cfg avagen.Config
	var err error

	if cfg.Size, err = queryInt(q, "size"); err != nil {
		return cfg, cache.AvatarKeyOpts{}, err
	}
	if cfg.SquaresPerAxis, err = queryInt(q, "squares"); err != nil {
		return cfg, cache.AvatarKeyOpts{}, err
	}
	if cfg.FontSize, err = queryInt(q, "font_size"); err != nil {
		return cfg, cache.AvatarKeyOpts{}, err
	}
	if cfg.BlurRadius, err = queryIntPtr(q, "blur"); err != nil {
		return cfg, cache.AvatarKeyOpts{}, err
	}
	if cfg.RotateDegrees, err = queryIntPtr(q, "rotate"); err != nil {
		return cfg, cache.AvatarKeyOpts{}, err
	}
	if cfg.Seed, err = querySeed(q, "seed"); err != nil {
		return cfg, cache.AvatarKeyOpts{}, err
	}

	cfg.Text = q.Get("text")
	cfg.SquareBorderColor = q.Get("border")
	cfg.BackgroundColor = q.Get("background")
	cfg.FontColor = q.Get("font_color")

	if cfg.ColorList, err = queryColorList(q); err != nil {
		return cfg, cache.AvatarKeyOpts{}, err
	}

	opts := cache.AvatarKeyOpts{
		Size:              cfg.Size,
		Text:              cfg.Text,
		ColorList:         cfg.ColorList,
		SquaresPerAxis:    cfg.SquaresPerAxis,
		BlurRadius:        cfg.BlurRadius,
		RotateDegrees:     cfg.RotateDegrees,
		Seed:              cfg.Seed,
		SquareBorderColor: cfg.SquareBorderColor,
		BackgroundColor:   cfg.BackgroundColor,
		FontColor:         cfg.FontColor,
		FontSize:          cfg.FontSize,
	}
	return cfg, opts, nil
}

// queryColorList resolves the colors and palette parameters. An explicit
// colors list wins; palette "random" maps to the empty list, which samples
// arbitrary hex colors.
func queryColorList(q url.Values) ([]string, error) {
	if colors := q.Get("colors"); colors != "" {
		return strings.Split(colors, ","), nil
	}
	switch palette := q.Get("palette"); palette {
	case "":
		return nil, nil
	case "random":
		return []string{}, nil
	default:
		p, err := avagen.PaletteByName(palette)
		if err != nil {
			return nil, err
		}
		return p, nil
	}
}

func queryInt(q url.Values, name string) (int, error) {
	raw := q.Get(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidInput, "parameter %s must be an integer, got %q", name, raw)
	}
	return v, nil
}

func queryIntPtr(q url.Values, name string) (*int, error) {
	raw := q.Get(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "parameter %s must be an integer, got %q", name, raw)
	}
	return &v, nil
}

func querySeed(q url.Values, name string) (*uint64, error) {
	raw := q.Get(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "parameter %s must be an unsigned integer, got %q", name, raw)
	}
	return &v, nil
}

// writeError maps the error's code onto an HTTP status and writes a JSON
// error body carrying the request ID.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusForCode(errors.GetCode(err))
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "err", err,
			"request_id", requestIDFromContext(r.Context()))
	}
	writeJSON(w, status, map[string]string{
		"error":      errors.UserMessage(err),
		"code":       string(errors.GetCode(err)),
		"request_id": requestIDFromContext(r.Context()),
	})
}

func statusForCode(code errors.Code) int {
	switch code {
	case errors.ErrCodeUnknownVariant, errors.ErrCodeUnknownPalette:
		return http.StatusNotFound
	case errors.ErrCodeValidation, errors.ErrCodeRequiredField,
		errors.ErrCodeInvalidInput, errors.ErrCodeInvalidColor,
		errors.ErrCodeInvalidFont:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func servePNG(w http.ResponseWriter, data []byte, cacheStatus string) {
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("X-Cache", cacheStatus)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
