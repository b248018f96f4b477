package view

// User-facing strings shared by every frontend.
const (
	MsgFetchFailed   = "Failed to fetch results. Please try again later."
	MsgNoResults     = "No movies found matching your criteria."
	MsgDetailFailed  = "Failed to load movie details. Please try again later."
	MsgRecsLoading   = "Loading recommendations..."
	MsgNoRecs        = "No similar recommendations found."
	MsgRecsFailed    = "Failed to load recommendations."
	MsgNoOverview    = "No overview available."
	LabelViewDetails = "View Details"
	LabelOverview    = "Overview"
	LabelRecs        = "Similar Recommendations"
	NotAvailable     = "N/A"
)
