package routes

// Default returns the built-in route table of the firm website. Blog post
// routes are appended separately from the loaded posts.
func Default() *Table {
	t := NewTable()
	for _, r := range defaultRoutes() {
		if err := t.Add(r); err != nil {
			panic(err)
		}
	}
	return t
}

func defaultRoutes() []Route {
	return []Route{
		{
			Path:        "/",
			Title:       "Clarivis Consulting Group | Health Education Accreditation by Eric A. Brichto",
			Description: "Clarivis Consulting Group, led by Eric A. Brichto, Esq., delivers expert accreditation readiness, compliance consulting, and site visit preparation for health sector education programs.",
			Keywords:    []string{"Clarivis Consulting Group", "Eric Brichto", "Eric A. Brichto", "health education accreditation", "accreditation consulting", "compliance consulting", "CAAHEP", "CAHME", "site visit preparation", "healthcare education"},
			OGType:      OGTypeWebsite,
		},
		{
			Path:        "/services",
			Title:       "Accreditation & Compliance Services | Clarivis Consulting Group",
			Description: "Comprehensive accreditation readiness, site visit preparation, compliance consulting, and training services for health sector education programs. Expert guidance from Eric A. Brichto.",
			Keywords:    []string{"accreditation services", "compliance consulting", "site visit preparation", "healthcare education", "accreditation readiness", "Clarivis"},
			OGType:      OGTypeWebsite,
		},
		{
			Path:        "/services/accreditation",
			Title:       "Accreditation Readiness Services | Clarivis Consulting Group",
			Description: "Expert accreditation readiness consulting including self-study support, gap analysis, and strategic planning for CAAHEP, CAHME, and other health education accreditation bodies.",
			Keywords:    []string{"accreditation readiness", "self-study support", "CAAHEP", "CAHME", "health education accreditation", "gap analysis", "accreditation consulting"},
			OGType:      OGTypeWebsite,
		},
		{
			Path:        "/services/site-visit",
			Title:       "Site Visit Preparation | Clarivis Consulting Group",
			Description: "Comprehensive site visit preparation including mock site visits, faculty coaching, and documentation review. Ensure your program is ready for accreditation peer review.",
			Keywords:    []string{"site visit preparation", "mock site visit", "accreditation visit", "peer review preparation", "faculty coaching", "accreditation readiness"},
			OGType:      OGTypeWebsite,
		},
		{
			Path:        "/services/compliance",
			Title:       "Regulatory Compliance Consulting | Clarivis Consulting Group",
			Description: "Navigate complex regulatory requirements with clarity. Expert compliance consulting for healthcare education programs including policy development and risk management.",
			Keywords:    []string{"compliance consulting", "regulatory compliance", "healthcare regulations", "policy development", "risk management", "education compliance"},
			OGType:      OGTypeWebsite,
		},
		{
			Path:        "/services/leadership",
			Title:       "Recruitment & Leadership Support | Clarivis Consulting Group",
			Description: "Strategic recruitment support and leadership development for healthcare education programs. Increase student applications and build strong program leadership.",
			Keywords:    []string{"recruitment support", "leadership development", "program development", "healthcare education", "student recruitment", "program management"},
			OGType:      OGTypeWebsite,
		},
		{
			Path:        "/services/training",
			Title:       "Accreditation Training Programs | Clarivis Consulting Group",
			Description: "Customized training programs for faculty, staff, and leadership on accreditation standards, compliance requirements, and quality improvement practices.",
			Keywords:    []string{"accreditation training", "faculty training", "compliance training", "quality improvement", "staff development", "healthcare education"},
			OGType:      OGTypeWebsite,
		},
		{
			Path:        "/about",
			Title:       "About Eric A. Brichto, Esq. | Clarivis Consulting Group",
			Description: "Eric A. Brichto, Esq., licensed attorney and accreditation professional with decades of leadership in health sector education. Former Chief Accreditation Officer at CAHME.",
			Keywords:    []string{"Eric Brichto", "Eric A. Brichto", "accreditation consultant", "licensed attorney", "healthcare education", "compliance expert", "CAHME", "Clarivis"},
			OGType:      OGTypeProfile,
		},
		{
			Path:        "/contact",
			Title:       "Contact Us | Schedule a Free Consultation | Clarivis Consulting",
			Description: "Schedule a free consultation with Clarivis Consulting Group. Get expert guidance on accreditation, compliance, and program development from Eric A. Brichto.",
			Keywords:    []string{"contact Clarivis", "schedule consultation", "accreditation help", "compliance consulting", "free consultation", "Eric Brichto contact"},
			OGType:      OGTypeWebsite,
		},
		{
			Path:        "/pricing",
			Title:       "Pricing & Service Packages | Clarivis Consulting Group",
			Description: "Transparent pricing for accreditation consulting services. Self-study support, full-cycle accreditation, mock site visits, and post-decision support packages.",
			Keywords:    []string{"accreditation consulting pricing", "consulting fees", "accreditation packages", "self-study pricing", "mock site visit cost", "Clarivis pricing"},
			OGType:      OGTypeWebsite,
		},
		{
			Path:        "/blog",
			Title:       "Eric A. Brichto Blog | Health Education Accreditation Insights",
			Description: "Expert insights on health education accreditation, compliance, and regulatory affairs from Eric A. Brichto, Esq., licensed attorney and former Chief Accreditation Officer.",
			Keywords:    []string{"Eric Brichto blog", "accreditation insights", "healthcare education", "compliance blog", "health sector education", "accreditation tips"},
			OGType:      OGTypeWebsite,
		},
		{
			Path:        "/who-we-serve",
			Title:       "Who We Serve | Healthcare & Education Organizations | Clarivis",
			Description: "Clarivis partners with healthcare organizations, education programs, and government contractors seeking accreditation, compliance, and operational excellence.",
			Keywords:    []string{"healthcare organizations", "education programs", "government contractors", "accreditation clients", "compliance services", "Clarivis clients"},
			OGType:      OGTypeWebsite,
		},
		{
			Path:        "/government",
			Title:       "Government Contract Support | Clarivis Consulting Group",
			Description: "Strategic guidance for organizations pursuing federal, state, and local healthcare contracts. Proposal development, compliance, and post-award support.",
			Keywords:    []string{"government contracts", "federal healthcare contracts", "proposal development", "contract compliance", "government consulting", "healthcare contracting"},
			OGType:      OGTypeWebsite,
		},
		{
			Path:        "/government/opportunity",
			Title:       "Opportunity Identification | Government Contracts | Clarivis",
			Description: "Identify and evaluate government contract opportunities aligned with your capabilities. Expert guidance on federal and state healthcare RFPs and solicitations.",
			Keywords:    []string{"opportunity identification", "government RFP", "contract opportunities", "federal contracts", "healthcare procurement", "bid identification"},
			OGType:      OGTypeWebsite,
		},
		{
			Path:        "/government/proposal",
			Title:       "Proposal Development | Government Contracts | Clarivis",
			Description: "Develop compliant, competitive government proposals that win. Expert proposal writing, compliance review, and submission support for healthcare contracts.",
			Keywords:    []string{"proposal development", "government proposals", "RFP response", "proposal writing", "competitive proposals", "contract proposals"},
			OGType:      OGTypeWebsite,
		},
		{
			Path:        "/government/teaming",
			Title:       "Teaming & Partnerships | Government Contracts | Clarivis",
			Description: "Build effective prime-subcontractor relationships for government contracts. Strategic teaming arrangements and partnership development support.",
			Keywords:    []string{"teaming agreements", "subcontractor partnerships", "government teaming", "prime contractor", "joint ventures", "contract partnerships"},
			OGType:      OGTypeWebsite,
		},
		{
			Path:        "/government/post-award",
			Title:       "Post-Award Contract Support | Government Contracts | Clarivis",
			Description: "Ensure successful government contract execution from day one. Compliance monitoring, performance management, and contract administration support.",
			Keywords:    []string{"post-award support", "contract execution", "contract compliance", "performance management", "contract administration", "government compliance"},
			OGType:      OGTypeWebsite,
		},
		{
			Path:        "/careers",
			Title:       "Careers at Clarivis Consulting Group | Join Our Team",
			Description: "Join Clarivis Consulting Group. Career opportunities in accreditation consulting, compliance, and healthcare education program development.",
			Keywords:    []string{"Clarivis careers", "consulting jobs", "accreditation careers", "healthcare consulting jobs", "compliance careers", "join Clarivis"},
			OGType:      OGTypeWebsite,
		},
		{
			Path:        "/privacy",
			Title:       "Privacy Policy | Clarivis Consulting Group",
			Description: "Clarivis Consulting Group privacy policy. Learn how we collect, use, and protect your personal information.",
			Keywords:    []string{"privacy policy", "data protection", "Clarivis privacy"},
			OGType:      OGTypeWebsite,
		},
		{
			Path:        "/terms",
			Title:       "Terms of Service | Clarivis Consulting Group",
			Description: "Clarivis Consulting Group terms of service. Review our terms and conditions for using our website and services.",
			Keywords:    []string{"terms of service", "terms and conditions", "Clarivis terms"},
			OGType:      OGTypeWebsite,
		},
		{
			Path:        "/search",
			Title:       "Search | Clarivis Consulting Group",
			Description: "Search Clarivis Consulting Group for accreditation resources, blog articles, and service information.",
			Keywords:    []string{"search Clarivis", "accreditation search", "find services"},
			OGType:      OGTypeWebsite,
			NoIndex:     true,
		},
		{
			Path:        "/leadership",
			Title:       "Our Leadership — Eric A. Brichto, Esq. | Clarivis Consulting Group",
			Description: "Meet Eric A. Brichto, Esq., Founder & Principal of Clarivis Consulting Group. Licensed attorney and accreditation expert with decades of healthcare education leadership.",
			Keywords:    []string{"Eric Brichto", "Eric A. Brichto", "Clarivis leadership", "accreditation consultant", "healthcare education", "licensed attorney"},
			OGType:      OGTypeProfile,
		},
	}
}
