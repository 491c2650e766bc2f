// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pubsearch

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pdiddy/linkage-engine/internal/httputil"
	"github.com/pdiddy/linkage-engine/pkg/types"
)

// entrezAPIBase is the NCBI E-utilities endpoint. Declared as a var so
// tests can substitute an httptest server.
var entrezAPIBase = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils"

// EntrezClient queries PubMed through the NCBI E-utilities: esearch for
// PMIDs, then efetch for full records with abstracts and author
// affiliations. NCBI allows 3 req/s without an API key and 10 req/s with
// one; the client enforces a fixed delay between its two calls.
type EntrezClient struct {
	Client *http.Client
	Config types.SearchConfig
}

// NewEntrezClient builds a client with the configured timeout.
func NewEntrezClient(cfg types.SearchConfig) *EntrezClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &EntrezClient{
		Client: &http.Client{Timeout: timeout},
		Config: cfg,
	}
}

// RequestDelay returns the configured inter-request pause, defaulting to
// the documented rate limit: 100 ms with an API key, 334 ms without.
func (c *EntrezClient) RequestDelay() time.Duration {
	if c.Config.RequestDelay > 0 {
		return c.Config.RequestDelay
	}
	if c.Config.APIKey != "" {
		return 100 * time.Millisecond
	}
	return 334 * time.Millisecond
}

// Search implements PublicationSearch. An empty PMID list is not an
// error: it returns an empty slice.
func (c *EntrezClient) Search(ctx context.Context, query string, maxResults int) ([]types.Publication, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("empty PubMed query")
	}
	if maxResults <= 0 {
		maxResults = c.Config.MaxResults
	}
	if maxResults <= 0 {
		maxResults = 20
	}

	ids, err := c.esearch(ctx, query, maxResults)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(c.RequestDelay()):
	}

	return c.efetch(ctx, ids)
}

func (c *EntrezClient) esearch(ctx context.Context, query string, maxResults int) ([]string, error) {
	params := url.Values{
		"db":      {"pubmed"},
		"term":    {query},
		"retmax":  {strconv.Itoa(maxResults)},
		"retmode": {"json"},
	}
	if c.Config.APIKey != "" {
		params.Set("api_key", c.Config.APIKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		entrezAPIBase+"/esearch.fcgi?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating esearch request: %w", err)
	}
	req.Header.Set("User-Agent", c.Config.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, c.Client, req, 0)
	if err != nil {
		return nil, fmt.Errorf("esearch request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("esearch returned HTTP %d", resp.StatusCode)
	}

	var sr esearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("parsing esearch response: %w", err)
	}
	return sr.Result.IDList, nil
}

func (c *EntrezClient) efetch(ctx context.Context, ids []string) ([]types.Publication, error) {
	params := url.Values{
		"db":      {"pubmed"},
		"id":      {strings.Join(ids, ",")},
		"retmode": {"xml"},
	}
	if c.Config.APIKey != "" {
		params.Set("api_key", c.Config.APIKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		entrezAPIBase+"/efetch.fcgi?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating efetch request: %w", err)
	}
	req.Header.Set("User-Agent", c.Config.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, c.Client, req, 0)
	if err != nil {
		return nil, fmt.Errorf("efetch request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("efetch returned HTTP %d", resp.StatusCode)
	}

	var set pubmedArticleSet
	if err := xml.NewDecoder(resp.Body).Decode(&set); err != nil {
		return nil, fmt.Errorf("parsing efetch response: %w", err)
	}

	pubs := make([]types.Publication, 0, len(set.Articles))
	for _, a := range set.Articles {
		pubs = append(pubs, a.toPublication())
	}
	return pubs, nil
}

// esearch JSON structures.
type esearchResponse struct {
	Result esearchResult `json:"esearchresult"`
}

type esearchResult struct {
	Count  string   `json:"count"`
	IDList []string `json:"idlist"`
}

// efetch PubMed XML structures (subset).
type pubmedArticleSet struct {
	XMLName  xml.Name        `xml:"PubmedArticleSet"`
	Articles []pubmedArticle `xml:"PubmedArticle"`
}

type pubmedArticle struct {
	PMID    string        `xml:"MedlineCitation>PMID"`
	Article pubmedDetails `xml:"MedlineCitation>Article"`
}

type pubmedDetails struct {
	Title       string         `xml:"ArticleTitle"`
	Journal     string         `xml:"Journal>Title"`
	PubYear     string         `xml:"Journal>JournalIssue>PubDate>Year"`
	MedlineDate string         `xml:"Journal>JournalIssue>PubDate>MedlineDate"`
	Abstract    []string       `xml:"Abstract>AbstractText"`
	Authors     []pubmedAuthor `xml:"AuthorList>Author"`
	ELocations  []eLocationID  `xml:"ELocationID"`
}

type pubmedAuthor struct {
	LastName       string   `xml:"LastName"`
	ForeName       string   `xml:"ForeName"`
	Initials       string   `xml:"Initials"`
	CollectiveName string   `xml:"CollectiveName"`
	Affiliations   []string `xml:"AffiliationInfo>Affiliation"`
}

type eLocationID struct {
	Type  string `xml:"EIdType,attr"`
	Value string `xml:",chardata"`
}

func (a pubmedArticle) toPublication() types.Publication {
	p := types.Publication{
		PMID:     a.PMID,
		Title:    strings.TrimSpace(a.Article.Title),
		Journal:  strings.TrimSpace(a.Article.Journal),
		Abstract: strings.TrimSpace(strings.Join(a.Article.Abstract, " ")),
		Year:     parseYear(a.Article.PubYear, a.Article.MedlineDate),
	}

	for _, loc := range a.Article.ELocations {
		if strings.EqualFold(loc.Type, "doi") {
			p.DOI = strings.TrimSpace(loc.Value)
			break
		}
	}

	for _, au := range a.Article.Authors {
		author := types.Author{Name: au.displayName()}
		if author.Name == "" {
			continue
		}
		if len(au.Affiliations) > 0 {
			author.Affiliation = strings.TrimSpace(au.Affiliations[0])
			for _, aff := range au.Affiliations {
				author.AllAffiliations = append(author.AllAffiliations, strings.TrimSpace(aff))
			}
		}
		p.Authors = append(p.Authors, author)
	}
	return p
}

func (au pubmedAuthor) displayName() string {
	if au.CollectiveName != "" {
		return strings.TrimSpace(au.CollectiveName)
	}
	fore := au.ForeName
	if fore == "" {
		fore = au.Initials
	}
	return strings.TrimSpace(strings.TrimSpace(fore) + " " + strings.TrimSpace(au.LastName))
}

// parseYear reads the year from PubDate, falling back to the leading
// digits of a MedlineDate like "2021 Jan-Feb".
func parseYear(year, medlineDate string) int {
	if y, err := strconv.Atoi(strings.TrimSpace(year)); err == nil {
		return y
	}
	fields := strings.Fields(medlineDate)
	if len(fields) > 0 {
		if y, err := strconv.Atoi(fields[0]); err == nil {
			return y
		}
	}
	return 0
}
