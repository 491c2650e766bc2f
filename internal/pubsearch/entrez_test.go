// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pubsearch

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/linkage-engine/pkg/types"
)

const sampleESearchJSON = `{
  "esearchresult": {
    "count": "2",
    "idlist": ["11111111", "22222222"]
  }
}`

const sampleEFetchXML = `<?xml version="1.0" ?>
<PubmedArticleSet>
  <PubmedArticle>
    <MedlineCitation>
      <PMID>11111111</PMID>
      <Article>
        <Journal>
          <JournalIssue><PubDate><Year>2023</Year></PubDate></JournalIssue>
          <Title>Journal of Microbial Ecology</Title>
        </Journal>
        <ArticleTitle>Cross-feeding in synthetic microbial communities</ArticleTitle>
        <ELocationID EIdType="doi">10.1000/jme.2023.001</ELocationID>
        <Abstract>
          <AbstractText>We study metabolic cross-feeding.</AbstractText>
          <AbstractText>Results show stable coexistence.</AbstractText>
        </Abstract>
        <AuthorList>
          <Author>
            <LastName>Harcombe</LastName>
            <ForeName>William</ForeName>
            <AffiliationInfo><Affiliation>University of Minnesota, USA</Affiliation></AffiliationInfo>
            <AffiliationInfo><Affiliation>BioTechnology Institute</Affiliation></AffiliationInfo>
          </Author>
          <Author>
            <LastName>Doe</LastName>
            <Initials>J</Initials>
          </Author>
        </AuthorList>
      </Article>
    </MedlineCitation>
  </PubmedArticle>
  <PubmedArticle>
    <MedlineCitation>
      <PMID>22222222</PMID>
      <Article>
        <Journal>
          <JournalIssue><PubDate><MedlineDate>2021 Jan-Feb</MedlineDate></PubDate></JournalIssue>
          <Title>Ecology Letters</Title>
        </Journal>
        <ArticleTitle>Spatial structure in microbial mutualism</ArticleTitle>
        <AuthorList>
          <Author>
            <CollectiveName>The Microbiome Consortium</CollectiveName>
          </Author>
        </AuthorList>
      </Article>
    </MedlineCitation>
  </PubmedArticle>
</PubmedArticleSet>`

func testEntrezServer(t *testing.T) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.Contains(r.URL.Path, "esearch"):
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, sampleESearchJSON)
		case strings.Contains(r.URL.Path, "efetch"):
			w.Header().Set("Content-Type", "application/xml")
			fmt.Fprint(w, sampleEFetchXML)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(ts.Close)

	old := entrezAPIBase
	entrezAPIBase = ts.URL
	t.Cleanup(func() { entrezAPIBase = old })
	return ts
}

func testSearchCfg() types.SearchConfig {
	return types.SearchConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   10 * time.Second,
			UserAgent: "test/0.1",
		},
		MaxResults:   20,
		RequestDelay: time.Millisecond,
	}
}

func TestEntrezSearch(t *testing.T) {
	ts := testEntrezServer(t)

	c := &EntrezClient{Client: ts.Client(), Config: testSearchCfg()}
	pubs, err := c.Search(context.Background(), "harcombe w[Author]", 20)
	require.NoError(t, err)
	require.Len(t, pubs, 2)

	p := pubs[0]
	assert.Equal(t, "11111111", p.PMID)
	assert.Equal(t, "Cross-feeding in synthetic microbial communities", p.Title)
	assert.Equal(t, "Journal of Microbial Ecology", p.Journal)
	assert.Equal(t, 2023, p.Year)
	assert.Equal(t, "10.1000/jme.2023.001", p.DOI)
	assert.Contains(t, p.Abstract, "metabolic cross-feeding")
	assert.Contains(t, p.Abstract, "stable coexistence")

	require.Len(t, p.Authors, 2)
	assert.Equal(t, "William Harcombe", p.Authors[0].Name)
	assert.Equal(t, "University of Minnesota, USA", p.Authors[0].Affiliation)
	assert.Len(t, p.Authors[0].AllAffiliations, 2)
	assert.Equal(t, "J Doe", p.Authors[1].Name)

	// MedlineDate fallback and collective author.
	assert.Equal(t, 2021, pubs[1].Year)
	assert.Equal(t, "The Microbiome Consortium", pubs[1].Authors[0].Name)
}

func TestEntrezSearchEmptyQuery(t *testing.T) {
	c := NewEntrezClient(testSearchCfg())
	_, err := c.Search(context.Background(), "   ", 10)
	assert.Error(t, err)
}

func TestEntrezSearchNoResults(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"esearchresult": {"count": "0", "idlist": []}}`)
	}))
	defer ts.Close()

	old := entrezAPIBase
	entrezAPIBase = ts.URL
	defer func() { entrezAPIBase = old }()

	c := &EntrezClient{Client: ts.Client(), Config: testSearchCfg()}
	pubs, err := c.Search(context.Background(), "nobody xyz[Author]", 10)
	require.NoError(t, err)
	assert.Empty(t, pubs)
}

func TestEntrezRequestDelayDefaults(t *testing.T) {
	withKey := NewEntrezClient(types.SearchConfig{APIKey: "k"})
	assert.Equal(t, 100*time.Millisecond, withKey.RequestDelay())

	without := NewEntrezClient(types.SearchConfig{})
	assert.Equal(t, 334*time.Millisecond, without.RequestDelay())

	custom := NewEntrezClient(types.SearchConfig{RequestDelay: time.Second})
	assert.Equal(t, time.Second, custom.RequestDelay())
}

func TestEntrezSearchHTTPError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	old := entrezAPIBase
	entrezAPIBase = ts.URL
	defer func() { entrezAPIBase = old }()

	c := &EntrezClient{Client: ts.Client(), Config: testSearchCfg()}
	_, err := c.Search(context.Background(), "smith j[Author]", 10)
	assert.ErrorContains(t, err, "HTTP 500")
}
