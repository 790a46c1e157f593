package crawl

import "github.com/vodtools/vodindex/internal/catalog"

// CrossIndexSubtitles re-crawls the same entry keys in each extra language
// and merges the discovered subtitle URLs into the matching media records,
// keyed by the language-agnostic item key.
func (c *Crawler) CrossIndexSubtitles(result []*catalog.Category, entryKeys, languages []string) error {
	for _, lang := range languages {
		foreign, err := c.Crawl(lang, entryKeys)
		if err != nil {
			return err
		}

		index := make(map[string]string)
		for _, cat := range foreign {
			for _, m := range cat.Items {
				if url, ok := m.Subtitles[lang]; ok && m.Key != "" {
					index[m.Key] = url
				}
			}
		}

		for _, cat := range result {
			for _, m := range cat.Items {
				url, ok := index[m.Key]
				if !ok {
					continue
				}
				if m.Subtitles == nil {
					m.Subtitles = make(map[string]string)
				}
				m.Subtitles[lang] = url
			}
		}
	}
	return nil
}
