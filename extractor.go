package snoo

// Extractor turns fetched markup into flat structured records. It is
// the boundary between the site's markup and the core: which selectors
// are queried is an implementation detail, but the records returned
// must satisfy the contract documented on each method.
type Extractor interface {
	// ExtractPost extracts the post record from a post page.
	// Identifiers are returned raw, exactly as present in the
	// markup; normalization is the caller's responsibility.
	// Returns EEXTRACT if the markup does not have the expected
	// structure for the reference's kind.
	ExtractPost(html string, ref *ContentRef) (*Post, error)

	// ExtractComments extracts the flat comment records from a post
	// page in document display order: top-level threads in listing
	// order, replies inline after their parent, pre-order.
	// "Load more replies" stubs are returned as placeholder records
	// (More == true), not dropped. Identifiers are returned raw.
	ExtractComments(html string, ref *ContentRef) ([]Comment, error)
}
