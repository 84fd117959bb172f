package email

const (
	subjectMatchFoundFmt      = "We may have found your %s"
	subjectInquiryResolvedFmt = "Your lost item report %q is closed"
)
