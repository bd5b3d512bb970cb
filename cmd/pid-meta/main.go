// pid-meta resolves DOIs to canonical bibliographic records. The
// registration agency API to ask can be fixed via flag; by default the
// agency is looked up through doi.org and the request routed there.
//
// $ pid-meta 10.1007/s11192-022-04367-w
// {
//   "valid": true,
//   "title": "Crossref as a bibliographic discovery tool ...",
//   ...
// }
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/miku/pidkit"
	"github.com/miku/pidkit/config"
	"github.com/miku/pidkit/extract"
	"github.com/miku/pidkit/fetch"
	"github.com/miku/pidkit/id"
	"github.com/sethgrid/pester"
)

var (
	api         = flag.String("a", "unknown", "provider api to use: crossref, datacite, medra, jalc, unknown")
	chainExtra  = flag.Bool("e", false, "also try crossref and datacite for fields the first api left empty")
	configPath  = flag.String("c", "", "path to config file")
	showVersion = flag.Bool("version", false, "show version")
)

func main() {
	flag.Parse()
	if *showVersion {
		fmt.Println(pidkit.Version)
		os.Exit(0)
	}
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	httpClient := pester.New()
	httpClient.MaxRetries = cfg.MaxRetries
	httpClient.RetryOnHTTP429 = true
	httpClient.Timeout = cfg.Timeout
	client := &fetch.Client{
		Doer:        httpClient,
		UserAgent:   cfg.UserAgent,
		MaxAttempts: cfg.MaxRetries,
		RetryPause:  cfg.RetryPause,
	}
	var (
		dm        = id.NewDOI(client, id.Cache{})
		extractor = extract.New(client)
		providers = []extract.Provider{extract.Provider(*api)}
	)
	if *chainExtra {
		providers = append(providers, extract.Crossref, extract.DataCite)
	}
	for _, doi := range flag.Args() {
		rec, err := extractor.ResolveDOI(dm, doi, providers...)
		if err != nil {
			log.Printf("resolve %s: %v", doi, err)
		}
		b, err := json.MarshalIndent(rec, "", "  ")
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(string(b))
	}
}
