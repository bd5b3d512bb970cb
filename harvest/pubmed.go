package harvest

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/adrg/xdg"
	"github.com/miku/pidkit"
)

const DefaultCacheTTL = 24 * time.Hour

// PubmedFile represents metadata for a PubMed update file, cf.
// https://ftp.ncbi.nlm.nih.gov/pubmed/updatefiles/.
type PubmedFile struct {
	Filename     string
	URL          string
	LastModified time.Time
	Size         string
}

// PubmedLister fetches and parses the PubMed update file listing. The
// listing page is cached on disk, since it changes at most daily.
type PubmedLister struct {
	BaseURL  string
	CacheTTL time.Duration
	CacheDir string
}

// NewPubmedLister creates a lister with a cache dir under XDG.
func NewPubmedLister(baseURL string) (*PubmedLister, error) {
	cacheDir, err := xdg.CacheFile(filepath.Join(pidkit.AppName, "pubmed"))
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return nil, err
	}
	return &PubmedLister{
		BaseURL:  baseURL,
		CacheTTL: DefaultCacheTTL,
		CacheDir: cacheDir,
	}, nil
}

// cachedIndex returns the cached listing if present and fresh.
func (pl *PubmedLister) cachedIndex() ([]byte, error) {
	cacheFile := filepath.Join(pl.CacheDir, "pubmed_index.html")
	info, err := os.Stat(cacheFile)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if time.Since(info.ModTime()) > pl.CacheTTL {
		return nil, nil
	}
	return os.ReadFile(cacheFile)
}

// fetchIndex fetches the listing page or serves it from cache.
func (pl *PubmedLister) fetchIndex() ([]byte, error) {
	b, err := pl.cachedIndex()
	if err != nil {
		return nil, err
	}
	if b != nil {
		return b, nil
	}
	resp, err := http.Get(pl.BaseURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch URL, status code: %d", resp.StatusCode)
	}
	b, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	cacheFile := filepath.Join(pl.CacheDir, "pubmed_index.html")
	if err := os.WriteFile(cacheFile, b, 0644); err != nil {
		return nil, err
	}
	return b, nil
}

// parseLastModified parses date strings like "2025-01-10 14:05".
func parseLastModified(dateStr string) (time.Time, error) {
	return time.Parse("2006-01-02 15:04", dateStr)
}

var pubmedFilePattern = regexp.MustCompile(`^pubmed\d+n\d+\.xml\.gz$`)

// FetchFiles retrieves and parses the PubMed update file listing.
func (pl *PubmedLister) FetchFiles() ([]PubmedFile, error) {
	b, err := pl.fetchIndex()
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(b)))
	if err != nil {
		return nil, err
	}
	var files []PubmedFile
	doc.Find("pre a").Each(func(i int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		if !pubmedFilePattern.MatchString(href) {
			return
		}
		var (
			parentText = s.Parent().Text()
			parts      = strings.Fields(parentText)
		)
		for j, part := range parts {
			if part == href && j+3 < len(parts) {
				dateStr := parts[j+1] + " " + parts[j+2]
				size := parts[j+3]
				lastModified, err := parseLastModified(dateStr)
				if err != nil {
					continue
				}
				files = append(files, PubmedFile{
					Filename:     href,
					URL:          pl.BaseURL + href,
					LastModified: lastModified,
					Size:         size,
				})
				break
			}
		}
	})
	return files, nil
}

// FilterPubmedFiles returns the files a given filter function accepts.
func FilterPubmedFiles(files []PubmedFile, f func(PubmedFile) bool) (result []PubmedFile) {
	for _, fi := range files {
		if f(fi) {
			result = append(result, fi)
		}
	}
	return
}
