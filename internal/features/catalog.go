package features

// Feature describes one recognized flag for UI purposes. The store itself
// accepts unknown keys as opaque strings; this catalog is display metadata.
type Feature struct {
	Key            string `json:"key"`
	Group          string `json:"group"`
	Label          string `json:"label"`
	Description    string `json:"description"`
	DefaultEnabled bool   `json:"default_enabled"`
}

var catalog = []Feature{
	{
		Key:            "leads_pipeline",
		Group:          "sales",
		Label:          "Leads pipeline",
		Description:    "Pipeline-stage tracking on customers",
		DefaultEnabled: true,
	},
	{
		Key:            "tasks",
		Group:          "sales",
		Label:          "Tasks",
		Description:    "Task assignment and completion workflow",
		DefaultEnabled: true,
	},
	{
		Key:            "followups",
		Group:          "sales",
		Label:          "Follow-ups",
		Description:    "Scheduled follow-up reminders per customer",
		DefaultEnabled: true,
	},
	{
		Key:            "conversations",
		Group:          "communication",
		Label:          "Conversations",
		Description:    "Customer conversation log across channels",
		DefaultEnabled: false,
	},
	{
		Key:            "email_integration",
		Group:          "communication",
		Label:          "Email integration",
		Description:    "Log inbound and outbound email as conversations",
		DefaultEnabled: false,
	},
	{
		Key:            "whatsapp_integration",
		Group:          "communication",
		Label:          "WhatsApp integration",
		Description:    "Log WhatsApp messages as conversations",
		DefaultEnabled: false,
	},
	{
		Key:            "custom_fields",
		Group:          "customization",
		Label:          "Custom fields",
		Description:    "Company-defined fields on customer records",
		DefaultEnabled: false,
	},
	{
		Key:            "analytics_dashboard",
		Group:          "reporting",
		Label:          "Analytics dashboard",
		Description:    "Pipeline counts and activity overview",
		DefaultEnabled: true,
	},
	{
		Key:            "audit_trail",
		Group:          "administration",
		Label:          "Audit trail",
		Description:    "Browsable log of every change in the workspace",
		DefaultEnabled: true,
	},
	{
		Key:            "team_hierarchy",
		Group:          "administration",
		Label:          "Team hierarchy",
		Description:    "Team-leader to salesman to customer ownership view",
		DefaultEnabled: true,
	},
}

// Catalog returns a copy so callers cannot mutate the reference data.
func Catalog() []Feature {
	out := make([]Feature, len(catalog))
	copy(out, catalog)
	return out
}

// Defaults lists the keys enabled for a freshly onboarded company.
func Defaults() []string {
	var keys []string
	for _, f := range catalog {
		if f.DefaultEnabled {
			keys = append(keys, f.Key)
		}
	}
	return keys
}
