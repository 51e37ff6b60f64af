package services

import (
	"context"
	"time"

	"github.com/rotisserie/eris"

	"maps-lead-scraper/models"
	"maps-lead-scraper/utils"
)

// DetailSource reads one listing page
type DetailSource interface {
	Extract(ctx context.Context, ref models.ListingRef) (models.ListingRecord, error)
}

// ContactSource mines a website for contact identifiers
type ContactSource interface {
	Mine(ctx context.Context, website string) models.ContactBundle
}

// RecordWriter receives finished records in discovery order
type RecordWriter interface {
	Write(rec models.FinalRecord) error
}

// Pipeline visits collected listings one at a time: detail page, then the
// website's contacts, then hands the merged record to the writer.
type Pipeline struct {
	spec      models.SearchSpec
	runID     string
	detail    DetailSource
	contacts  ContactSource // nil defers contact mining downstream
	writer    RecordWriter
	assembler *RecordAssembler
	limiter   *utils.RateLimiter
	logger    *utils.Logger
	now       func() time.Time
}

// NewPipeline wires a pipeline. contacts may be nil.
func NewPipeline(spec models.SearchSpec, runID string, detail DetailSource, contacts ContactSource,
	writer RecordWriter, limiter *utils.RateLimiter, logger *utils.Logger) *Pipeline {
	return &Pipeline{
		spec:      spec,
		runID:     runID,
		detail:    detail,
		contacts:  contacts,
		writer:    writer,
		assembler: NewRecordAssembler(logger),
		limiter:   limiter,
		logger:    logger,
		now:       time.Now,
	}
}

// Run processes refs in order and returns the records written. A listing that
// cannot be opened is skipped. Cancellation stops the loop after the current
// listing and is not reported as an error. Only a writer failure is fatal.
func (p *Pipeline) Run(ctx context.Context, refs []models.ListingRef) ([]models.FinalRecord, error) {
	if p.spec.Limit > 0 && len(refs) > p.spec.Limit {
		refs = refs[:p.spec.Limit]
	}

	records := make([]models.FinalRecord, 0, len(refs))
	for i, ref := range refs {
		if ctx.Err() != nil {
			p.logger.Warn("Interrupted, stopping after %d/%d listings", len(records), len(refs))
			break
		}
		if p.limiter != nil {
			if err := p.limiter.Wait(ctx); err != nil {
				p.logger.Warn("Interrupted, stopping after %d/%d listings", len(records), len(refs))
				break
			}
		}

		p.logger.Info("[%d/%d] Opening listing...", i+1, len(refs))
		rec, err := p.detail.Extract(ctx, ref)
		if err != nil {
			p.logger.Error("   [!] Skipping listing %d: %v", i+1, err)
			continue
		}
		p.logger.Info("   [+] %s", rec.Name)

		var bundle *models.ContactBundle
		if p.contacts != nil && rec.Website != "" {
			b := p.contacts.Mine(ctx, rec.Website)
			bundle = &b
			p.logger.Info("   [+] Contacts: %d email(s), %d phone(s), %d social link(s)",
				len(b.Emails), len(b.Phones), len(b.Socials))
		}

		final := p.assembler.Assemble(p.spec, p.runID, ref, rec, bundle, p.now())
		if err := p.writer.Write(final); err != nil {
			return records, eris.Wrapf(err, "write record %d", final.Position)
		}
		records = append(records, final)
	}
	return records, nil
}
