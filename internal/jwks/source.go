package jwks

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-cleanhttp"

	"github.com/dropDatabas3/jwksverify/internal/observability/logger"
)

// DefaultProviderURL es el host del proveedor; el documento vive en /sso/jwks/<clientID>.
const DefaultProviderURL = "https://api.workos.com"

// DefaultFetchTimeout acota la descarga única de arranque.
const DefaultFetchTimeout = 10 * time.Second

// Fetcher descarga el documento JWKS crudo para un client id.
type Fetcher interface {
	Fetch(ctx context.Context, clientID string) ([]byte, error)
}

// HTTPFetcher hace un único GET, sin reintentos.
type HTTPFetcher struct {
	BaseURL string
	Client  *http.Client
}

// NewHTTPFetcher crea un fetcher con un cliente cleanhttp acotado por timeout.
func NewHTTPFetcher(baseURL string, timeout time.Duration) *HTTPFetcher {
	if baseURL == "" {
		baseURL = DefaultProviderURL
	}
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	c := cleanhttp.DefaultClient()
	c.Timeout = timeout
	return &HTTPFetcher{BaseURL: strings.TrimRight(baseURL, "/"), Client: c}
}

// URL devuelve el endpoint del key-set para clientID.
func (f *HTTPFetcher) URL(clientID string) string {
	return f.BaseURL + "/sso/jwks/" + url.PathEscape(clientID)
}

func (f *HTTPFetcher) Fetch(ctx context.Context, clientID string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.URL(clientID), nil)
	if err != nil {
		return nil, &FetchError{Stage: StageDownload, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, &FetchError{Stage: StageDownload, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, &FetchError{Stage: StageStatus, Err: fmt.Errorf("status %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{Stage: StageRead, Err: err}
	}
	return body, nil
}

// Source garantiza que el documento JWKS esté presente en el store.
type Source struct {
	Store   DocumentStore
	Fetcher Fetcher
}

// NewSource arma un Source sobre un store y un fetcher.
func NewSource(store DocumentStore, fetcher Fetcher) *Source {
	return &Source{Store: store, Fetcher: fetcher}
}

// Ensure deja el documento name disponible en el store.
// Si ya existe retorna sin tocar la red; si no, lo descarga una vez y lo
// persiste verbatim. Cualquier falla es *FetchError.
func (s *Source) Ensure(ctx context.Context, name, clientID string) error {
	log := logger.L().With(logger.Component("jwks.source"), logger.ClientID(clientID), logger.File(s.Store.Location(name)))

	ok, err := s.Store.Exists(ctx, name)
	if err != nil {
		return &FetchError{Stage: StageRead, Err: err}
	}
	if ok {
		log.Debug("jwks document present", logger.Source("cache"))
		return nil
	}

	body, err := s.Fetcher.Fetch(ctx, clientID)
	if err != nil {
		if _, isFetch := err.(*FetchError); isFetch {
			return err
		}
		return &FetchError{Stage: StageDownload, Err: err}
	}

	if err := s.Store.Write(ctx, name, body); err != nil {
		return &FetchError{Stage: StageWrite, Err: err}
	}
	log.Info("jwks document downloaded", logger.Source("remote"), logger.Bytes(len(body)))
	return nil
}

// Refresh descarga el documento de nuevo y pisa el que haya. Es la vía manual
// de rotación: el servicio nunca lo invoca por sí mismo. Si la descarga falla
// o el documento nuevo no tiene una clave usable, el existente queda intacto.
func (s *Source) Refresh(ctx context.Context, name, clientID string) error {
	log := logger.L().With(logger.Component("jwks.source"), logger.ClientID(clientID), logger.File(s.Store.Location(name)))

	body, err := s.Fetcher.Fetch(ctx, clientID)
	if err != nil {
		if _, isFetch := err.(*FetchError); isFetch {
			return err
		}
		return &FetchError{Stage: StageDownload, Err: err}
	}
	if _, err := Parse(body); err != nil {
		return err
	}

	if err := s.Store.Write(ctx, name, body); err != nil {
		return &FetchError{Stage: StageWrite, Err: err}
	}
	log.Info("jwks document refreshed", logger.Source("remote"), logger.Bytes(len(body)))
	return nil
}
