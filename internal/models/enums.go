package models

// ProductType is the kind of opening being measured.
type ProductType string

const (
	ProductDoubleHung      ProductType = "DOUBLE_HUNG"
	ProductSingleHung      ProductType = "SINGLE_HUNG"
	ProductCasement        ProductType = "CASEMENT"
	ProductSlider          ProductType = "SLIDER"
	ProductPicture         ProductType = "PICTURE"
	ProductAwning          ProductType = "AWNING"
	ProductBayBow          ProductType = "BAY_BOW"
	ProductPatioDoor       ProductType = "PATIO_DOOR"
	ProductEntryDoor       ProductType = "ENTRY_DOOR"
	ProductStorefront      ProductType = "STOREFRONT"
	ProductShowerEnclosure ProductType = "SHOWER_ENCLOSURE"
	ProductMirror          ProductType = "MIRROR"
	ProductGlassOnly       ProductType = "GLASS_ONLY"
)

func (p ProductType) Valid() bool {
	switch p {
	case ProductDoubleHung, ProductSingleHung, ProductCasement, ProductSlider,
		ProductPicture, ProductAwning, ProductBayBow, ProductPatioDoor,
		ProductEntryDoor, ProductStorefront, ProductShowerEnclosure,
		ProductMirror, ProductGlassOnly:
		return true
	}
	return false
}

// GlassType is optional on a measurement; the empty value means "Standard".
type GlassType string

const (
	GlassSinglePane GlassType = "SINGLE_PANE"
	GlassDoublePane GlassType = "DOUBLE_PANE"
	GlassTriplePane GlassType = "TRIPLE_PANE"
	GlassLowE       GlassType = "LOW_E"
	GlassTempered   GlassType = "TEMPERED"
	GlassLaminated  GlassType = "LAMINATED"
	GlassObscure    GlassType = "OBSCURE"
	GlassTinted     GlassType = "TINTED"
)

func (g GlassType) Valid() bool {
	switch g {
	case GlassSinglePane, GlassDoublePane, GlassTriplePane, GlassLowE,
		GlassTempered, GlassLaminated, GlassObscure, GlassTinted:
		return true
	}
	return false
}

// FrameType is optional on a measurement and drives the material multiplier.
type FrameType string

const (
	FrameVinyl      FrameType = "VINYL"
	FrameWood       FrameType = "WOOD"
	FrameAluminum   FrameType = "ALUMINUM"
	FrameFiberglass FrameType = "FIBERGLASS"
	FrameComposite  FrameType = "COMPOSITE"
)

func (f FrameType) Valid() bool {
	switch f {
	case FrameVinyl, FrameWood, FrameAluminum, FrameFiberglass, FrameComposite:
		return true
	}
	return false
}

// JobStatus tracks a job through the field workflow.
type JobStatus string

const (
	JobStatusDraft      JobStatus = "DRAFT"
	JobStatusQuoted     JobStatus = "QUOTED"
	JobStatusScheduled  JobStatus = "SCHEDULED"
	JobStatusInProgress JobStatus = "IN_PROGRESS"
	JobStatusCompleted  JobStatus = "COMPLETED"
	JobStatusCancelled  JobStatus = "CANCELLED"
)

func (s JobStatus) Valid() bool {
	switch s {
	case JobStatusDraft, JobStatusQuoted, JobStatusScheduled,
		JobStatusInProgress, JobStatusCompleted, JobStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether a job in status s may move to next.
// Any open job can be cancelled and a quote can be reopened as a draft.
func (s JobStatus) CanTransitionTo(next JobStatus) bool {
	switch s {
	case JobStatusDraft:
		return next == JobStatusQuoted || next == JobStatusCancelled
	case JobStatusQuoted:
		return next == JobStatusScheduled || next == JobStatusDraft || next == JobStatusCancelled
	case JobStatusScheduled:
		return next == JobStatusInProgress || next == JobStatusCancelled
	case JobStatusInProgress:
		return next == JobStatusCompleted || next == JobStatusCancelled
	}
	return false
}

// LeadStatus tracks a sales lead before it becomes a customer.
type LeadStatus string

const (
	LeadStatusNew       LeadStatus = "NEW"
	LeadStatusContacted LeadStatus = "CONTACTED"
	LeadStatusQuoted    LeadStatus = "QUOTED"
	LeadStatusWon       LeadStatus = "WON"
	LeadStatusLost      LeadStatus = "LOST"
)

func (s LeadStatus) Valid() bool {
	switch s {
	case LeadStatusNew, LeadStatusContacted, LeadStatusQuoted, LeadStatusWon, LeadStatusLost:
		return true
	}
	return false
}
