package books

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const export = `{
	"101": {
		"title": "THE NAME OF THE ROSE",
		"isbn": {"0": "0099466031", "2": "9780099466031"},
		"date": "2004",
		"publication": "Vintage Classics (2004), Paperback, 512 pages",
		"authors": [
			{"lf": "Eco, Umberto", "fl": "umberto eco"},
			{"lf": "Weaver, William", "fl": "William Weaver", "role": "Translator"},
			{"lf": "Doe, Jane", "fl": "Jane Doe"}
		],
		"language": ["English"],
		"originallanguage": ["Italian"],
		"awards": ["Premio Strega", "Prix Médicis"],
		"ddc": {"code": ["853.914"], "wording": ["Literature", "Italian"]},
		"lcc": {"code": "PQ4865.C6"},
		"subject": {"0": ["Monasteries", "Fiction"], "1": ["Fiction"]},
		"tags": ["novel", null, "fiction"]
	},
	"102": {
		"title": "Selected poems (Penguin Modern Classics)",
		"isbn": [],
		"date": 1998,
		"publication": "London, Penguin, 1998",
		"pages": "240 ",
		"format": [{"code": "1", "text": "PAPERBACK"}],
		"authors": [[]],
		"primaryauthor": "Cavafy, C. P.",
		"originallanguage": ["(blank)"]
	}
}`

func loadTestExport(t *testing.T) []Record {
	t.Helper()
	e, err := Load(strings.NewReader(export))
	require.NoError(t, err)
	records := Convert(e)
	require.Len(t, records, 2)
	return records
}

func TestConvert(t *testing.T) {
	records := loadTestExport(t)

	rose := records[0]
	assert.Equal(t, "9780099466031.md", rose.PageName)
	assert.Equal(t, "9780099466031", rose.ISBN)
	assert.Equal(t, "The Name Of The Rose", rose.Title)
	assert.True(t, rose.BadTitle)
	assert.Equal(t, "Vintage Classics", rose.Publisher)
	assert.Equal(t, "Paperback", rose.Format)
	assert.Equal(t, "512", rose.Pages)
	assert.Equal(t, "2004", rose.Date)
	assert.Equal(t, "Italian", rose.OriginalLanguage)
	assert.Equal(t, "PQ4865.C6", rose.LCC)
	require.NotNil(t, rose.DDC)
	assert.Equal(t, "853.914", rose.DDC.Code)
	assert.Equal(t, []string{"Fiction", "Monasteries", "fiction", "novel"}, rose.Tags)

	require.Len(t, rose.Authors, 3)
	assert.Equal(t, Contributor{Name: "Umberto Eco", Class: "p-primaryauthor"}, rose.Authors[0])
	assert.Equal(t, Contributor{Name: "William Weaver", Class: "p-translator", Role: "Translator"}, rose.Authors[1])
	assert.Equal(t, "p-secondaryauthor", rose.Authors[2].Class)

	poems := records[1]
	assert.Equal(t, "selected-poems.md", poems.PageName)
	assert.Equal(t, "", poems.ISBN)
	assert.Equal(t, "Selected Poems", poems.Title)
	assert.False(t, poems.BadTitle)
	assert.Equal(t, "London", poems.Publisher)
	assert.Equal(t, "Paperback", poems.Format)
	assert.Equal(t, "240", poems.Pages)
	assert.Equal(t, "1998", poems.Date)
	assert.Equal(t, "", poems.OriginalLanguage)
	assert.Equal(t, []Contributor{{Name: "Cavafy, C. P.", Class: "p-primaryauthor"}}, poems.Authors)
	assert.Nil(t, poems.DDC)
	assert.Empty(t, poems.Tags)
}

func TestCleanTitle(t *testing.T) {
	tests := []struct {
		input string
		want  string
		bad   bool
	}{
		{"Middlemarch", "Middlemarch", false},
		{"MIDDLEMARCH", "Middlemarch", false},
		{"WAR AND PEACE", "War And Peace", true},
		{"Ulysses (Penguin Modern Classics)", "Ulysses", false},
		{"Bleak house", "Bleak House", false},
		{"The secret agent", "The Secret Agent", true},
		{"The Secret Agent", "The Secret Agent", false},
		{"Waiting for the Barbarians [Paperback]", "Waiting for the Barbarians [Paperback]", false},
	}
	for _, tt := range tests {
		got, bad := CleanTitle(tt.input)
		assert.Equal(t, tt.want, got, "title of %q", tt.input)
		assert.Equal(t, tt.bad, bad, "bad flag of %q", tt.input)
	}
}

func TestPageName(t *testing.T) {
	assert.Equal(t, "0099466031.md", PageName("0099466031", "ignored"))
	assert.Equal(t, "the-name-of-the-rose.md", PageName("", "The Name of the Rose"))
	assert.Equal(t, "cafe-society.md", PageName("", "Café Society"))
	assert.Equal(t, "voina-i-mir.md", PageName("", "Война и мир"))

	empty := PageName("", "!!!")
	assert.Regexp(t, `^book-[0-9a-f]{8}\.md$`, empty)
	assert.Equal(t, empty, PageName("", "!!!"), "fallback names are stable")
	assert.NotEqual(t, empty, PageName("", "???"))
}

func TestConvertKeepsPageNamesUnique(t *testing.T) {
	e, err := Load(strings.NewReader(`{
		"1": {"title": "Война и мир", "publication": "Moscow"},
		"2": {"title": "Анна Каренина", "publication": "Moscow"},
		"10": {"title": "Dune", "publication": "Gollancz"},
		"3": {"title": "Dune", "publication": "Ace"}
	}`))
	require.NoError(t, err)

	records := Convert(e)
	names := make(map[string]string, len(records))
	for _, r := range records {
		names[r.PageName] = r.Publisher
	}
	assert.Len(t, names, 4)
	assert.Contains(t, names, "voina-i-mir.md")
	assert.Contains(t, names, "anna-karenina.md")
	assert.Equal(t, "Ace", names["dune.md"], "lower export ids keep the plain name")
	assert.Equal(t, "Gollancz", names["dune-2.md"])
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Hello World", "hello-world"},
		{"  Trim Me  ", "trim-me"},
		{"Already-slugged", "already-slugged"},
		{"Ünïcödé", "unicode"},
		{"!!!", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.input), "Slugify(%q)", tt.input)
	}
}

func TestMarkdown(t *testing.T) {
	md := loadTestExport(t)[0].Markdown()

	for _, want := range []string{
		"<div class='h-item book'>\n",
		"<h2 class='p-name booktitle'>The Name Of The Rose</h2>\n",
		"<p class='h-authors'>\n  <span class='p-author p-primaryauthor h-card'>Umberto Eco</span><br>\n",
		" Translator:  <span class='p-author p-translator h-card'>William Weaver</span><br>\n",
		"  <span class='p-brand p-publisher'>Vintage Classics</span>\n",
		"  <span class='p-format'>Paperback</span>, ",
		"  <span class='p-pages'>512</span> pages<br>\n",
		"  ISBN: <span class='u-uid p-isbn2'>9780099466031</span><br>\n",
		"LCC: <span class='p-lcc' rel='category'>PQ4865.C6</span>\n",
		"Dewey Decimal: <span class='p-code'>853.914</span>\n<br><span class='p-wording'>Literature</span>,\n<span class='p-wording'>Italian</span></span>",
		"<br>Language: <span class='p-language'>English</span>\n",
		"<br> Original Language: <span class='p-originallanguage'>Italian</span>\n",
		"<span class='p-award'>Premio Strega</span>,\n<span class='p-award'>Prix Médicis</span>",
		"</div>\n<p class='p-category'>#Fiction, #Monasteries, #fiction, #novel</p>",
	} {
		assert.Contains(t, md, want)
	}
}

func TestMarkdownMinimal(t *testing.T) {
	md := loadTestExport(t)[1].Markdown()

	assert.NotContains(t, md, "ISBN:")
	assert.NotContains(t, md, "h-catalog")
	assert.NotContains(t, md, "Original Language")
	assert.NotContains(t, md, "p-category")
	assert.True(t, strings.HasSuffix(md, "</div>\n"))
}

func TestWriteAll(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "src", "books")
	extra := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(extra, "selected-poems.md"), []byte("My favourite."), 0o644))

	records := loadTestExport(t)
	paths, err := NewWriter(dir, extra).WriteAll(records)
	require.NoError(t, err)
	require.Len(t, paths, 2)

	rose, err := os.ReadFile(filepath.Join(dir, "9780099466031.md"))
	require.NoError(t, err)
	assert.Equal(t, records[0].Markdown(), string(rose))

	poems, err := os.ReadFile(filepath.Join(dir, "selected-poems.md"))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(string(poems), "</div>\n\n\nMy favourite."))
}

func TestSupplementMissing(t *testing.T) {
	s, err := Supplement(t.TempDir(), "nothing.md")
	require.NoError(t, err)
	assert.Empty(t, s)

	s, err = Supplement("", "nothing.md")
	require.NoError(t, err)
	assert.Empty(t, s)
}

func TestLoadMalformed(t *testing.T) {
	_, err := Load(strings.NewReader(`{"1": `))
	assert.Error(t, err)
}
