package universe

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func constituentsPage(count int) string {
	var b strings.Builder
	b.WriteString(`<html><body><table><tr><th>Company</th><th>Symbol</th></tr>`)
	for i := 0; i < count; i++ {
		b.WriteString(fmt.Sprintf("<tr><td>Company %d</td><td>SYM%d</td></tr>", i, i))
	}
	b.WriteString(`</table></body></html>`)
	return b.String()
}

func testProvider() *WikipediaProvider {
	return &WikipediaProvider{
		Client: &http.Client{Timeout: 5 * time.Second},
		Tries:  1,
		Delay:  time.Millisecond,
	}
}

func TestFetchOnce_ParsesConstituentsTable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, constituentsPage(50))
	}))
	defer srv.Close()

	symbols, err := testProvider().fetchOnce(context.Background(), srv.URL, 40)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(symbols) != 50 {
		t.Fatalf("expected 50 symbols, got %d", len(symbols))
	}
	for _, s := range symbols {
		if !strings.HasSuffix(s, ".TO") {
			t.Errorf("symbol %s not normalized", s)
		}
	}
}

func TestFetchOnce_TooFewRowsIsMalformed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, constituentsPage(5))
	}))
	defer srv.Close()

	_, err := testProvider().fetchOnce(context.Background(), srv.URL, 40)
	var malformed *MalformedSourceError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedSourceError for implausibly small table, got %v", err)
	}
}

func TestFetchOnce_NoSymbolColumn(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `<html><body><table><tr><th>Company</th><th>Sector</th></tr>
			<tr><td>Royal Bank</td><td>Financials</td></tr></table></body></html>`)
	}))
	defer srv.Close()

	_, err := testProvider().fetchOnce(context.Background(), srv.URL, 1)
	var malformed *MalformedSourceError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedSourceError, got %v", err)
	}
}

func TestFetchOnce_HTTPErrorIsAcquisition(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := testProvider().fetchOnce(context.Background(), srv.URL, 1)
	var acq *AcquisitionError
	if !errors.As(err, &acq) {
		t.Fatalf("expected AcquisitionError, got %v", err)
	}
}

func TestFallback_UsesNextProvider(t *testing.T) {
	failing := &StaticProvider{} // empty, returns ErrEmptyUniverse
	f := &Fallback{Providers: []Provider{failing, NewSampleProvider()}}

	symbols, err := f.Fetch(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(symbols) == 0 {
		t.Fatal("expected the sample universe from the fallback provider")
	}
}

func TestFallback_AllFail(t *testing.T) {
	f := &Fallback{Providers: []Provider{&StaticProvider{}, &StaticProvider{}}}
	if _, err := f.Fetch(context.Background()); !errors.Is(err, ErrEmptyUniverse) {
		t.Fatalf("expected joined ErrEmptyUniverse, got %v", err)
	}
}
