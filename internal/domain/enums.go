package domain

// Sector enumerates the business sectors an interaction belongs to.
type Sector string

const (
	SectorRetail    Sector = "RETAIL"
	SectorSME       Sector = "SME"
	SectorCorporate Sector = "CORPORATE"
)

// Sectors lists all sectors in declaration order.
var Sectors = []Sector{SectorRetail, SectorSME, SectorCorporate}

// ParseSector resolves a sector value, reporting whether it is known.
func ParseSector(v string) (Sector, bool) {
	for _, s := range Sectors {
		if string(s) == v {
			return s, true
		}
	}
	return "", false
}

// Channel enumerates interaction entry channels.
type Channel string

const (
	ChannelCallCenter Channel = "CALL_CENTER"
	ChannelChat       Channel = "CHAT"
	ChannelEmail      Channel = "EMAIL"
	ChannelBranch     Channel = "BRANCH"
	ChannelMobileApp  Channel = "MOBILE_APP"
	ChannelSocial     Channel = "SOCIAL"
)

// Channels lists all channels in declaration order.
var Channels = []Channel{
	ChannelCallCenter,
	ChannelChat,
	ChannelEmail,
	ChannelBranch,
	ChannelMobileApp,
	ChannelSocial,
}

// ParseChannel resolves a channel value, reporting whether it is known.
func ParseChannel(v string) (Channel, bool) {
	for _, c := range Channels {
		if string(c) == v {
			return c, true
		}
	}
	return "", false
}

// ProductGroup enumerates product groupings for filtering and ranking.
type ProductGroup string

const (
	// ProductGroupAll is the filter sentinel matching every group.
	ProductGroupAll ProductGroup = "ALL"

	ProductGroupCards       ProductGroup = "CARDS"
	ProductGroupLoans       ProductGroup = "LOANS"
	ProductGroupDeposits    ProductGroup = "DEPOSITS"
	ProductGroupPayments    ProductGroup = "PAYMENTS"
	ProductGroupInsurance   ProductGroup = "INSURANCE"
	ProductGroupInvestments ProductGroup = "INVESTMENTS"
)

// ProductGroups lists concrete product groups (the ALL sentinel excluded).
var ProductGroups = []ProductGroup{
	ProductGroupCards,
	ProductGroupLoans,
	ProductGroupDeposits,
	ProductGroupPayments,
	ProductGroupInsurance,
	ProductGroupInvestments,
}

// ParseProductGroup resolves a product group value, accepting the ALL sentinel.
func ParseProductGroup(v string) (ProductGroup, bool) {
	if v == string(ProductGroupAll) {
		return ProductGroupAll, true
	}
	for _, g := range ProductGroups {
		if string(g) == v {
			return g, true
		}
	}
	return "", false
}

// ProblemTag enumerates the closed set of problem indicators an interaction
// can carry.
type ProblemTag string

const (
	TagTechIssue        ProblemTag = "TECH_ISSUE"
	TagUnresolved       ProblemTag = "UNRESOLVED"
	TagNegativeFeedback ProblemTag = "NEGATIVE_FEEDBACK"
	TagChurnRisk        ProblemTag = "CHURN_RISK"
	TagLongWait         ProblemTag = "LONG_WAIT"
	TagRepeatContact    ProblemTag = "REPEAT_CONTACT"
)

// ProblemTags lists all tags in declaration order.
var ProblemTags = []ProblemTag{
	TagTechIssue,
	TagUnresolved,
	TagNegativeFeedback,
	TagChurnRisk,
	TagLongWait,
	TagRepeatContact,
}

// ParseProblemTag resolves a tag value, reporting whether it is known.
func ParseProblemTag(v string) (ProblemTag, bool) {
	for _, t := range ProblemTags {
		if string(t) == v {
			return t, true
		}
	}
	return "", false
}

// FunnelStage enumerates the interaction funnel in its fixed order.
type FunnelStage string

const (
	StageIntake  FunnelStage = "INTAKE"
	StageRouting FunnelStage = "ROUTING"
	StageWork    FunnelStage = "WORK"
	StageResolve FunnelStage = "RESOLVE"
)

// FunnelStages is the fixed total order of the funnel.
var FunnelStages = []FunnelStage{StageIntake, StageRouting, StageWork, StageResolve}

// Zone is a severity classification derived from a score and thresholds.
type Zone string

const (
	ZoneGreen  Zone = "GREEN"
	ZoneYellow Zone = "YELLOW"
	ZoneRed    Zone = "RED"
)

// Granularity selects the calendar bucketing for series builders.
type Granularity string

const (
	GranularityDay   Granularity = "day"
	GranularityWeek  Granularity = "week"
	GranularityMonth Granularity = "month"
)

// ParseGranularity resolves a granularity value, reporting whether it is known.
func ParseGranularity(v string) (Granularity, bool) {
	switch Granularity(v) {
	case GranularityDay, GranularityWeek, GranularityMonth:
		return Granularity(v), true
	}
	return "", false
}
