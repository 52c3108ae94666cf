package content

// HomePage documents the "home-page" global.
var HomePage = Schema{
	Slug: "home-page",
	Sections: []Section{
		{
			Key: "heroSection",
			Fields: []Field{
				null("headline"),
				str("subheadline", "Crafting spaces that inspire"),
				str("ctaLabel", "Explore Projects"),
				str("ctaLink", "/projects"),
				media("backgroundImage"),
				list("slides", "image"),
			},
		},
		{
			Key: "aboutSection",
			Fields: []Field{
				str("title", "About District"),
				str("subtitle", "Interiors & Flowers"),
				str("description", "District is a Riyadh based studio delivering interior fit-out and floral design for corporate, hospitality and residential spaces."),
				media("image"),
				list("stats"),
			},
		},
		{
			Key: "servicesSection",
			Fields: []Field{
				str("title", "Our Services"),
				str("subtitle", "What We Do"),
				list("services", "icon"),
			},
		},
		{
			Key: "projectsSection",
			Fields: []Field{
				str("title", "Featured Projects"),
				str("subtitle", "Selected Work"),
				str("viewAllLabel", "View All Projects"),
				list("projects", "image"),
			},
		},
		{
			Key: "clientsSection",
			Fields: []Field{
				str("title", "Our Clients"),
				str("subtitle", "Trusted by leading brands"),
				list("clients", "logo"),
			},
		},
		{
			Key: "testimonialsSection",
			Fields: []Field{
				str("title", "What Our Clients Say"),
				list("testimonials", "avatar"),
			},
		},
		{
			Key: "contactSection",
			Fields: []Field{
				str("title", "Get in Touch"),
				str("subtitle", "Let's build your next space together"),
				object("contactInfo",
					str("email", "Sales@district.sa"),
					str("phone", "+966 11 000 0000"),
					str("address", "Riyadh, Saudi Arabia"),
					str("workingHours", "Sun - Thu, 9:00 AM - 6:00 PM"),
				),
				list("socialLinks"),
			},
		},
	},
}

// HomePageWithDefaults is WithDefaults for the home page.
func HomePageWithDefaults(raw Node) Node {
	return WithDefaults(HomePage, raw)
}

// HomePageDefaults returns the all-defaults home page.
func HomePageDefaults() Node {
	return Defaults(HomePage)
}
