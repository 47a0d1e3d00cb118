package embed

import (
	"github.com/casenav-io/casenav/core"
)

// RecordContent generates the text to embed for a case record.
// The composition is fixed: title, company, the "used <ai type> for
// <business function>" phrase, then the outcome, with empty strings
// substituted for missing fields. Changing this composition changes every
// record fingerprint and therefore invalidates all cached embeddings, which
// is exactly the intended behavior.
func RecordContent(r *core.CaseRecord) string {
	return r.UseCaseName + ". " + r.Company + " used " + r.AIType + " for " + r.BusinessFunction + ". " + r.Outcome
}

// RecordFingerprint generates a fingerprint of a record's composed text for
// change detection. Used to decide when a record needs re-embedding.
func RecordFingerprint(r *core.CaseRecord) core.Fingerprint {
	return core.FingerprintFromContent(RecordContent(r))
}
