// Package ingestion turns a scraped restaurant catalog into an entity graph
// and a vector index.
//
// LoadCatalog decodes the scraper's JSON into an ordered Catalog, keeping the
// key order of the source file so builds are reproducible. Builder.Build
// emits one Restaurant per catalog record followed by its MenuItems, composes
// one embedding input per item and embeds all inputs on an ants worker pool.
//
// Bad records never abort a build. Records without a resolvable name, records
// that do not match the schema and items without a name are skipped, counted
// in the BuildReport and logged once as an aggregate warning. Only an
// unreadable catalog (ErrBuild) or exhausted embedding retries (ErrEmbedding)
// fail the build.
package ingestion
