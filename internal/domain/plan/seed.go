package plan

// Seed returns a fresh copy of the rollout plan. Progress is derived from
// the seeded activities rather than taken as authored.
func Seed() []Phase {
	phases := []Phase{
		{
			ID:        1,
			Name:      "Phase 1: Planning",
			FocusArea: "Planning & Discovery",
			Duration:  "1–2 Weeks",
			Activities: []Activity{
				{Name: "Sync with Learning & OD", Timeline: "Day 1-3"},
				{Name: "Survey leads for 'AI Wishlist'", Timeline: "Day 4-7"},
				{Name: "Confirm Google trainer", Timeline: "Day 5"},
				{Name: "Identify pain points", Timeline: "Day 8-10"},
			},
			Deliverables: []string{"Scope Document signed off", "Curriculum Outline approved"},
			Status:       StatusActive,
		},
		{
			ID:        2,
			Name:      "Phase 2: Development",
			FocusArea: "Content Development",
			Duration:  "1–2 Weeks",
			Activities: []Activity{
				{Name: "Build decks & demo scripts", Timeline: "Week 3"},
				{Name: "Create banking scenarios", Timeline: "Week 3"},
				{Name: "Recruit Pilot Group (IT, Ops, HR)", Timeline: "Week 4"},
			},
			Deliverables: []string{"Training Materials Draft 1.0", "Pilot Group confirmed"},
			Status:       StatusPending,
		},
		{
			ID:        3,
			Name:      "Phase 3: Pilot",
			FocusArea: "Pilot Program",
			Duration:  "1 Week",
			Activities: []Activity{
				{Name: "Run Pilot Session", Timeline: "Week 5, Tuesday"},
				{Name: "Capture Q&A/confusion points", Timeline: "Week 5, Wed"},
				{Name: "Assess comprehension", Timeline: "Week 5, Friday"},
			},
			Deliverables: []string{"Session delivered", "Feedback Report compiled"},
			Status:       StatusPending,
		},
		{
			ID:        4,
			Name:      "Phase 4: Refinement",
			FocusArea: "Curriculum Refinement",
			Duration:  "1–2 Weeks",
			Activities: []Activity{
				{Name: "Update content based on pilot", Timeline: "Week 6"},
				{Name: "Finalize rollout schedule", Timeline: "Week 6"},
				{Name: "Develop dept-specific examples", Timeline: "Week 7"},
			},
			Deliverables: []string{"Final Training Materials (2.0)", "Support Guides (PDFs) ready"},
			Status:       StatusPending,
		},
		{
			ID:        5,
			Name:      "Phase 5: Rollout",
			FocusArea: "Full Deployment",
			Duration:  "2–4 Weeks",
			Activities: []Activity{
				{Name: "Wave 1: Ops & Finance", Timeline: "Week 8-9"},
				{Name: "Wave 2: HR, Marketing, Sales", Timeline: "Week 10-11"},
				{Name: "Track participation", Timeline: "Ongoing"},
			},
			Deliverables: []string{"Training completed", "Attendance > 85%"},
			Status:       StatusPending,
		},
		{
			ID:        6,
			Name:      "Phase 6: Sustainment",
			FocusArea: "Review & Sustainment",
			Duration:  "1 Week",
			Activities: []Activity{
				{Name: "Analyze adoption data", Timeline: "Month 3"},
				{Name: "Plan advanced sessions", Timeline: "Month 3"},
				{Name: "Identify Super Users", Timeline: "Ongoing"},
			},
			Deliverables: []string{"Final Project Report", "Continuous Learning Plan"},
			Status:       StatusPending,
		},
	}
	for i := range phases {
		phases[i].Progress = Progress(phases[i].Activities)
	}
	return phases
}

// SeedKPIs returns the dashboard indicators.
func SeedKPIs() []KPI {
	return []KPI{
		{Label: "Target Adoption", Value: "0%", Target: "80% (90 Days)", Trend: TrendNeutral},
		{Label: "Pilot Recruitment", Value: "0/30", Target: "30 Users", Trend: TrendNeutral},
		{Label: "Curriculum Readiness", Value: "10%", Target: "100%", Trend: TrendNeutral},
		{Label: "Budget Utilization", Value: "0%", Target: "On Track", Trend: TrendNeutral},
	}
}

// SeedBrief returns the project charter.
func SeedBrief() Brief {
	return Brief{
		Name: "Google Workspace AI Enablement",
		Goal: "Equip all bank users with practical, day-to-day proficiency in Google Workspace AI tools " +
			"to improve productivity, enhance output quality, and reduce manual workload.",
		Challenge: "The bank has access to powerful AI features, but usage is inconsistent. " +
			"Without structured training, we risk low ROI on license costs and potential data risks from improper usage.",
		Strategy: []StrategyStep{
			{Step: "1. Assess", Description: "Identify high-impact workflows"},
			{Step: "2. Pilot", Description: "Test on control group"},
			{Step: "3. Refine", Description: "Optimize material"},
			{Step: "4. Launch", Description: "Deploy in waves"},
		},
		SuccessMetrics: []string{
			"Adoption: 80% active usage",
			"Proficiency: Score > 4.5/5",
			"Efficiency: Proven time savings",
		},
		Governance: []string{
			"Weekly Status Checks (15 mins)",
			"Phase Reviews (After Pilot & Milestones)",
			"Post-Implementation Review",
		},
		Stakeholders: []string{"Project Lead", "Learning & OD", "Google Consultant"},
	}
}
