package harvest

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// mockHTML is a simple representation of the PubMed files HTML listing
const mockHTML = `<!DOCTYPE HTML PUBLIC "-//W3C//DTD HTML 3.2 Final//EN">
<html>
 <head>
   <title>Index of /pubmed/updatefiles</title>
    </head>
	 <body>
	 <h1>Index of /pubmed/updatefiles</h1>
	 <pre>Name                     Last modified      Size  <hr><a href="/pubmed/">Parent Directory</a>                              -
	 <a href="README.txt">README.txt</a>               2025-01-10 10:29  4.5K
	 <a href="pubmed25n1275.xml.gz">pubmed25n1275.xml.gz</a>     2025-01-10 14:05   83M
	 <a href="pubmed25n1275.xml.gz.md5">pubmed25n1275.xml.gz.md5</a> 2025-01-10 14:05   60
	 <a href="pubmed25n1275_stats.html">pubmed25n1275_stats.html</a> 2025-01-10 14:05  585
	 <a href="pubmed25n1276.xml.gz">pubmed25n1276.xml.gz</a>     2025-01-15 14:05   19M
	 </pre>
	 </body>
	 </html>
`

func setupTestServer() *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusOK)
		io.WriteString(w, mockHTML)
	}))
}

func TestFetchIndex(t *testing.T) {
	server := setupTestServer()
	defer server.Close()
	cacheDir := t.TempDir()
	lister := &PubmedLister{
		BaseURL:  server.URL + "/",
		CacheTTL: DefaultCacheTTL,
		CacheDir: cacheDir,
	}
	content, err := lister.fetchIndex()
	if err != nil {
		t.Fatalf("failed to fetch index: %v", err)
	}
	if !strings.Contains(string(content), "pubmed25n1275.xml.gz") {
		t.Errorf("content does not include expected file")
	}
	cacheFile := filepath.Join(cacheDir, "pubmed_index.html")
	if _, err := os.Stat(cacheFile); os.IsNotExist(err) {
		t.Errorf("listing was not cached")
	}
	cached, err := lister.fetchIndex()
	if err != nil {
		t.Fatalf("failed to fetch from cache: %v", err)
	}
	if string(cached) != string(content) {
		t.Errorf("cache and content differ")
	}
}

func TestFetchFiles(t *testing.T) {
	server := setupTestServer()
	defer server.Close()
	lister := &PubmedLister{
		BaseURL:  server.URL + "/",
		CacheTTL: DefaultCacheTTL,
		CacheDir: t.TempDir(),
	}
	files, err := lister.FetchFiles()
	if err != nil {
		t.Fatalf("failed to fetch files: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("got %d files, want 2", len(files))
	}
	want := PubmedFile{
		Filename: "pubmed25n1275.xml.gz",
		URL:      server.URL + "/pubmed25n1275.xml.gz",
		Size:     "83M",
	}
	wantTime, _ := parseLastModified("2025-01-10 14:05")
	if files[0].Filename != want.Filename {
		t.Errorf("filename, got %s, want %s", files[0].Filename, want.Filename)
	}
	if files[0].URL != want.URL {
		t.Errorf("URL, got %s, want %s", files[0].URL, want.URL)
	}
	if files[0].Size != want.Size {
		t.Errorf("size, got %s, want %s", files[0].Size, want.Size)
	}
	if !files[0].LastModified.Equal(wantTime) {
		t.Errorf("last modified got %v, want %v", files[0].LastModified, wantTime)
	}
}

func TestFilterPubmedFiles(t *testing.T) {
	files := []PubmedFile{
		{Filename: "pubmed25n1275.xml.gz", LastModified: mustDay(t, "2025-01-10")},
		{Filename: "pubmed25n1276.xml.gz", LastModified: mustDay(t, "2025-01-15")},
	}
	after := func(f PubmedFile) bool {
		return f.LastModified.After(mustDay(t, "2025-01-12"))
	}
	got := FilterPubmedFiles(files, after)
	if len(got) != 1 || got[0].Filename != "pubmed25n1276.xml.gz" {
		t.Errorf("got %v", got)
	}
}

func mustDay(t *testing.T, value string) time.Time {
	t.Helper()
	v, err := time.Parse("2006-01-02", value)
	if err != nil {
		t.Fatal(err)
	}
	return v
}
