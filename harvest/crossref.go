// Package harvest pulls raw provider payloads to disk, one file per day
// slice, for offline identifier validation and metadata extraction.
package harvest

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"time"

	"github.com/jinzhu/now"
	"github.com/klauspost/compress/zstd"
	"github.com/miku/pidkit/atomicfile"
	"github.com/miku/pidkit/fetch"
	"github.com/segmentio/encoding/json"
	log "github.com/sirupsen/logrus"
)

var bNewline = []byte("\n")

// CrossrefHarvester fetches work records from the Crossref API and
// writes them to zstd compressed JSON lines files on disk.
type CrossrefHarvester struct {
	Client              fetch.Doer
	ApiEndpoint         string
	ApiFilter           string
	ApiEmail            string
	Rows                int
	UserAgent           string
	MaxRetries          int
	AcceptableMissRatio float64 // recommended: 0.1
}

// worksResponse is the works API envelope, items kept raw since they go
// to disk unparsed.
type worksResponse struct {
	Message struct {
		Items        []json.RawMessage `json:"items"`
		ItemsPerPage int64             `json:"items-per-page"`
		NextCursor   string            `json:"next-cursor"`
		TotalResults int64             `json:"total-results"`
	} `json:"message"`
	Status string `json:"status"`
}

func (wr *worksResponse) isLast() bool {
	return wr.Message.NextCursor == ""
}

// WriteDaySlice atomically writes one day of works to a file under dir.
// Idempotent, once the data has been captured.
func (h *CrossrefHarvester) WriteDaySlice(t time.Time, dir string, prefix string) error {
	start := now.With(t).BeginningOfDay()
	end := now.With(t).EndOfDay()
	fn := fmt.Sprintf("%s%s-%s-%s.json.zst",
		prefix,
		h.ApiFilter,
		start.Format("2006-01-02"),
		end.Format("2006-01-02"))
	cachePath := path.Join(dir, fn)
	if _, err := os.Stat(cachePath); err == nil {
		log.WithField("path", cachePath).Debug("crossref: day slice already captured")
		return nil
	}
	f, err := atomicfile.New(cachePath)
	if err != nil {
		return err
	}
	enc, err := zstd.NewWriter(f)
	if err != nil {
		f.Abort()
		return err
	}
	if err := h.WriteSlice(enc, start, end); err != nil {
		f.Abort()
		return err
	}
	if err := enc.Close(); err != nil {
		f.Abort()
		return err
	}
	return f.Close()
}

func (h *CrossrefHarvester) addOptionalEmail(vs url.Values) {
	if h.ApiEmail != "" {
		vs.Add("mailto", h.ApiEmail)
	}
}

func (h *CrossrefHarvester) logSeenRatio(seen int, wr *worksResponse) {
	if wr == nil {
		return
	}
	var pct float64
	if wr.Message.TotalResults > 0 {
		pct = 100 * (float64(seen) / float64(wr.Message.TotalResults))
	}
	log.WithFields(log.Fields{
		"status": wr.Status,
		"total":  wr.Message.TotalResults,
		"seen":   seen,
		"pct":    fmt.Sprintf("%0.2f", pct),
	}).Info("crossref: slice progress")
}

// WriteSlice writes works registered between from and until to w, one
// JSON document per line, following the cursor until exhaustion.
func (h *CrossrefHarvester) WriteSlice(w io.Writer, from, until time.Time) error {
	filter := fmt.Sprintf("from-%s-date:%s,until-%s-date:%s",
		h.ApiFilter,
		from.Format("2006-01-02"),
		h.ApiFilter,
		until.Format("2006-01-02"))
	vs := url.Values{}
	vs.Add("filter", filter)
	vs.Add("cursor", "*")
	vs.Add("rows", fmt.Sprintf("%d", h.Rows))
	h.addOptionalEmail(vs)
	var seen int
	var retries int
	for {
		link := fmt.Sprintf("%s?%s", h.ApiEndpoint, vs.Encode())
		log.WithField("url", link).Debug("crossref: fetching")
		req, err := http.NewRequest("GET", link, nil)
		if err != nil {
			return err
		}
		req.Header.Add("User-Agent", h.UserAgent)
		resp, err := h.Client.Do(req)
		if err != nil {
			return err
		}
		if resp.StatusCode >= 400 {
			resp.Body.Close()
			return fmt.Errorf("crossref: HTTP %d while fetching %s", resp.StatusCode, link)
		}
		var wr worksResponse
		err = json.NewDecoder(resp.Body).Decode(&wr)
		resp.Body.Close()
		if err != nil {
			if retries < h.MaxRetries {
				retries++
				log.WithFields(log.Fields{"err": err, "retry": retries, "max": h.MaxRetries}).
					Warn("crossref: decode failed, retrying")
				continue
			}
			return fmt.Errorf("crossref: decode failed with %v", err)
		}
		if wr.Status != "ok" {
			return fmt.Errorf("crossref failed with status: %s", wr.Status)
		}
		for _, item := range wr.Message.Items {
			item = append(item, bNewline...)
			if _, err := w.Write(item); err != nil {
				return err
			}
		}
		seen += len(wr.Message.Items)
		h.logSeenRatio(seen, &wr)
		if wr.isLast() || seen >= int(wr.Message.TotalResults) {
			log.WithFields(log.Fields{"seen": seen, "total": wr.Message.TotalResults}).
				Info("crossref: slice done")
			return nil
		}
		vs = url.Values{}
		cursor := wr.Message.NextCursor
		if cursor == "" {
			return nil
		}
		vs.Add("cursor", cursor)
		h.addOptionalEmail(vs)
		// Repeated requests with a fresh cursor but no new items and
		// seen < total happen; tolerate a small miss ratio and move on.
		if len(wr.Message.Items) == 0 {
			numMissOk := int(h.AcceptableMissRatio * float64(wr.Message.TotalResults))
			if int(wr.Message.TotalResults)-seen < numMissOk {
				log.WithFields(log.Fields{"seen": seen, "total": wr.Message.TotalResults}).
					Warn("crossref: assuming ok to skip")
				break
			}
			return fmt.Errorf("crossref: no more items, api may have changed, total=%d, seen=%d",
				wr.Message.TotalResults, seen)
		}
		retries = 0
	}
	return nil
}
