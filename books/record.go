package books

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/samber/lo"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/eringen/monomotapa/site"
)

// badEndings are publisher series and edition notes LibraryThing appends
// to titles. A title ending in one of them is cut at its first '('.
var badEndings = []string{
	"(Abacus Books)", "(Big)", "(Bk.1)", "(Blackwell Manifestos)",
	"(Blackwell Readers)", "(Canongate Classics)", "(Cape poetry)",
	"(Cape Poetry)", "(Carcanet Fiction)", "(Classics)",
	"(Comix)", "(Contemporary American Fiction)", "(Deluxe Edition)",
	"(Dent Everyman\"s Library)", "(Duck Series)", "(E)",
	"(Essential Penguin)", "(Everyman Poetry)", "(Everyman's Library)",
	"(Faber poetry)", "(Felix Pollak Prize in Poetry)", "(Fiction series)",
	"(Five Star Paperback)", "(flamingo)", "(Flamingo modern classics)",
	"(FSG Classics)", "(Gallery Books)", "(golden compass)",
	"(Golden Compass)", "(Grove Press Poetry)", "(Harvest Book)",
	"(Harvill Panther)", "(Houghton Library Publications)", "(King Penguin)",
	"(King Penguin S.)", "(Mermaid Books)", "(New Directions Paperbook)",
	"(New Directions Pearls)", "(New Oxford Illustrated Dickens)",
	"(New York Review Books)", "(New York Review Books Classics)",
	"(New York Review Books Children's Collection)", "(Flamingo)",
	"(None)", "(NYRB Classics)", "(Oxford Paperback Reference)",
	"(Oxford Paperbacks)", "(Oxford poets)", "(Oxford Poets)",
	"(Oxford Poets series)", "(Oxford World&#039;s Classics)",
	"(Paladin Books)", "(Panther)", "(Pelican)", "(Penguin Classics)",
	"(Penguin Classics Deluxe Edition)", "(Penguin Drop Caps)",
	"(Penguin Graphic Fiction)", "(Penguin Great Ideas)", "(Penguin History)",
	"(Penguin International Poets)", "(Penguin International Writers)",
	"(penguin modern classics)", "(Penguin Modern Classics)",
	"(Penguin Originals)", "(Penguin Poetry)", "(Alabama poetry series)",
	"(penguin twentieth century classics)", "(Cookery Library)",
	"(penguin twentieth-century classics)", "(Social Science Paperbacks)",
	"(Penguin Twentieth Century Classics)", "(v. 2)", "[Paperback]",
	"(Penguin Twentieth-Century Classics)", "(SIGNED)", "(v. 1)",
	"(Perspectives)", "(Peter Owen Modern Classics)",
	"(Phoenix Fiction Series)", "(Phoenix Poets)", "(Picador)",
	"(picador books)", "(Picador Books)", "(Pimlico)",
	"(Pitt Poetry Series)", "(Plain)", "(Poetry Book Society Recommendation)",
	"(Poetry Pleiade)", "(Poets)", "(Poets, Penguin)",
	"(Prairie Schooner Book Prize in Poetry)",
	"(P.S.)", "(Pushkin paper)", "( \" Rebel Inc. \" Classics)",
	"(Salt Modern Poets S.)", "(Seagull Books - Seagull World Literature)",
	"(Seagull Books - The Africa List)", "(Southern Messenger Poets Series)",
	"[issue, #, number, no., seven, VII] (SIGNED)", "(Spanish Edition)",
	"(Swenson Poetry Award)", "(The Art of the Novella)",
	"(The Art of the Novella series)", "(The Contemporary Art of the Novella)",
	"(Tin House New Voice)", "(Triquarterly Books)", "(UK edition)",
	"(Utterly Confused Series)", "(Verba Mundi)", "(Vintage)",
	"(Vintage Classics)", "(Vintage Contemporaries)",
	"(Vintage Contemporaries Original)", "(Vintage International)",
	"(Wessex Editions)", "(Yale Series of Younger Poets)",
	"(Zed New Fiction)",
}

// skippedLanguages are original languages not worth mentioning.
var skippedLanguages = []string{"", "English", "(blank)"}

// titleCase upper-cases the first letter of every word and lower-cases
// the rest.
func titleCase(s string) string {
	return cases.Title(language.Und).String(s)
}

// Contributor is an author line of a record.
type Contributor struct {
	Name string
	// Class is the microformat property, e.g. p-primaryauthor.
	Class string
	Role  string
}

// DeweyDecimal is a record's Dewey Decimal classification.
type DeweyDecimal struct {
	Code    string
	Wording []string
}

// Record is a book ready to be written as a markdown page. Text fields
// are kept as exported, which is already HTML escaped.
type Record struct {
	ISBN     string
	Title    string
	BadTitle bool
	PageName string

	Publisher string
	Format    string
	Pages     string
	Date      string

	Authors          []Contributor
	Languages        []string
	OriginalLanguage string
	Awards           []string
	DDC              *DeweyDecimal
	LCC              string
	Tags             []string
}

// Convert builds the records of every book in export, ordered by page name.
// Books that would share a page name are numbered in order of their export
// ids: the second "dune.md" becomes "dune-2.md".
func Convert(export Export) []Record {
	ids := lo.Keys(export)
	sort.Slice(ids, func(i, j int) bool { return numericLess(ids[i], ids[j]) })

	records := make([]Record, 0, len(export))
	taken := make(map[string]bool, len(export))
	for _, id := range ids {
		r := NewRecord(export[id])
		r.PageName = uniqueName(r.PageName, taken)
		taken[r.PageName] = true
		records = append(records, r)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].PageName < records[j].PageName })
	return records
}

func uniqueName(name string, taken map[string]bool) string {
	if !taken[name] {
		return name
	}
	base := strings.TrimSuffix(name, site.MarkdownExt)
	for n := 2; ; n++ {
		candidate := fmt.Sprintf("%s-%d%s", base, n, site.MarkdownExt)
		if !taken[candidate] {
			return candidate
		}
	}
}

// NewRecord converts one book.
func NewRecord(b Book) Record {
	title, bad := CleanTitle(b.Title)
	publisher, format, pages := publication(b)
	r := Record{
		ISBN:      string(b.ISBN),
		Title:     title,
		BadTitle:  bad,
		PageName:  PageName(string(b.ISBN), title),
		Publisher: publisher,
		Format:    format,
		Pages:     pages,
		Date:      string(b.Date),
		Authors:   contributors(b),
		Languages: b.Language,
		Awards:    b.Awards,
		Tags:      tags(b),
	}
	if len(b.OriginalLanguage) > 0 && !lo.Contains(skippedLanguages, b.OriginalLanguage[0]) {
		r.OriginalLanguage = b.OriginalLanguage[0]
	}
	if b.DDC != nil && len(b.DDC.Code) > 0 {
		r.DDC = &DeweyDecimal{Code: b.DDC.Code[0], Wording: b.DDC.Wording}
	}
	if b.LCC != nil {
		r.LCC = string(b.LCC.Code)
	}
	return r
}

// CleanTitle tidies a title as exported and reports whether it is likely
// to need a manual fix. All-caps titles and fully lower-cased titles of
// more than one word are title cased; the result is flagged when it has
// more than two words, since title casing mangles small words. Known
// series suffixes are dropped.
func CleanTitle(title string) (string, bool) {
	bad := false
	if title == strings.ToUpper(title) {
		title = titleCase(title)
		bad = len(strings.Fields(title)) > 2
	}
	for _, ending := range badEndings {
		if strings.HasSuffix(title, ending) {
			title, _, _ = strings.Cut(title, "(")
			title = strings.TrimSpace(title)
			break
		}
	}
	if title == site.Capitalize(title) && len(strings.Fields(title)) > 1 {
		title = titleCase(title)
		if len(strings.Fields(title)) > 2 {
			bad = true
		}
	}
	return title, bad
}

// PageName is the file name of a record: its ISBN, or the slug of its
// title when there is none. Titles without any slug characters are named
// from a hash of the title.
func PageName(isbn, title string) string {
	if isbn != "" {
		return isbn + site.MarkdownExt
	}
	name := Slugify(title)
	if name == "" {
		name = fallbackSlug(title)
	}
	return name + site.MarkdownExt
}

func contributors(b Book) []Contributor {
	if len(b.Authors) > 0 && b.Authors[0] != (Author{}) {
		out := make([]Contributor, 0, len(b.Authors))
		for i, a := range b.Authors {
			c := Contributor{Name: titleCase(a.Name)}
			switch {
			case i == 0:
				c.Class = "p-primaryauthor"
			case a.Role != "":
				c.Class = "p-" + Slugify(a.Role)
				c.Role = a.Role
			default:
				c.Class = "p-secondaryauthor"
			}
			out = append(out, c)
		}
		return out
	}
	if b.PrimaryAuthor != "" {
		return []Contributor{{Name: titleCase(b.PrimaryAuthor), Class: "p-primaryauthor"}}
	}
	return nil
}

// publication splits the publication line into publisher, format and page
// count. Explicit format and pages fields win over the publication line.
func publication(b Book) (publisher, format, pages string) {
	pub := strings.Split(b.Publication, ",")
	publisher, _, _ = strings.Cut(pub[0], "(")
	publisher = strings.TrimSpace(publisher)
	if isUpper(publisher) {
		publisher = titleCase(publisher)
	}

	if len(b.Format) > 0 {
		format = b.Format[0].Text
	} else {
		guess := strings.TrimLeftFunc(pub[max(len(pub)-2, 0)], unicode.IsSpace)
		if !strings.HasPrefix(guess, publisher) &&
			!strings.HasPrefix(guess, "(") &&
			!startsWithDigit(guess) {
			format = guess
		}
	}
	if isUpper(format) {
		format = titleCase(format)
	}

	pages = string(b.Pages)
	if pages == "" {
		pages = strings.Trim(pub[len(pub)-1], " pages")
	}
	return publisher, format, strings.TrimRightFunc(pages, unicode.IsSpace)
}

// isUpper reports whether s has at least one cased letter and no lower
// case ones.
func isUpper(s string) bool {
	cased := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) || unicode.IsTitle(r) {
			cased = true
		}
	}
	return cased
}

func startsWithDigit(s string) bool {
	return s != "" && s[0] >= '0' && s[0] <= '9'
}

func tags(b Book) []string {
	all := append([]string{}, b.Subject...)
	for _, t := range b.Tags {
		if t != nil {
			all = append(all, *t)
		}
	}
	all = lo.Uniq(lo.Compact(all))
	sort.Strings(all)
	return all
}

// Markdown renders the record as an h-item fragment.
func (r Record) Markdown() string {
	var b strings.Builder
	b.WriteString("<div class='h-item book'>\n")
	fmt.Fprintf(&b, "<h2 class='p-name booktitle'>%s</h2>\n", r.Title)

	if len(r.Authors) > 0 {
		b.WriteString("<p class='h-authors'>\n")
		for _, a := range r.Authors {
			if a.Role != "" {
				fmt.Fprintf(&b, " %s:", a.Role)
			}
			fmt.Fprintf(&b, "  <span class='p-author %s h-card'>%s</span><br>\n", a.Class, a.Name)
		}
		b.WriteString("</p>\n")
	}

	b.WriteString("<p class='h-publication'>\n")
	fmt.Fprintf(&b, "  <span class='p-brand p-publisher'>%s</span>\n", r.Publisher)
	fmt.Fprintf(&b, "  <span class='dt-date'>%s</span><br>\n", r.Date)
	if r.Format != "" {
		fmt.Fprintf(&b, "  <span class='p-format'>%s</span>, ", r.Format)
	}
	fmt.Fprintf(&b, "  <span class='p-pages'>%s</span> pages<br>\n", r.Pages)
	if r.ISBN != "" {
		fmt.Fprintf(&b, "  ISBN: <span class='u-uid p-isbn2'>%s</span><br>\n", r.ISBN)
	}
	b.WriteString("</p>\n")

	if r.LCC != "" || r.DDC != nil {
		b.WriteString("<p class='h-catalog'>\n")
		if r.LCC != "" {
			fmt.Fprintf(&b, "LCC: <span class='p-lcc' rel='category'>%s</span>\n", r.LCC)
		}
		if r.DDC != nil {
			fmt.Fprintf(&b, "<br><span class='h-ddc' rel='category'>\nDewey Decimal: <span class='p-code'>%s</span>\n", r.DDC.Code)
			if len(r.DDC.Wording) > 0 {
				b.WriteString("<br>")
				b.WriteString(spans("p-wording", r.DDC.Wording))
			}
			b.WriteString("</span>")
		}
		b.WriteString("</p>\n")
	}

	if len(r.Languages) > 0 {
		fmt.Fprintf(&b, "<br>Language: <span class='p-language'>%s</span>\n", strings.Join(r.Languages, ", "))
	}
	if r.OriginalLanguage != "" {
		fmt.Fprintf(&b, "<br> Original Language: <span class='p-originallanguage'>%s</span>\n", r.OriginalLanguage)
	}
	if len(r.Awards) > 0 {
		fmt.Fprintf(&b, "<br><span class='h-awards'>%s</span>\n", spans("p-award", r.Awards))
	}
	b.WriteString("</div>\n")

	if len(r.Tags) > 0 {
		hashed := lo.Map(r.Tags, func(t string, _ int) string { return "#" + t })
		fmt.Fprintf(&b, "<p class='p-category'>%s</p>", strings.Join(hashed, ", "))
	}
	return b.String()
}

func spans(class string, values []string) string {
	out := lo.Map(values, func(v string, _ int) string {
		return fmt.Sprintf("<span class='%s'>%s</span>", class, v)
	})
	return strings.Join(out, ",\n")
}
