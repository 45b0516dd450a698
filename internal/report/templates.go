package report

// Templates holds the narrative text blocks embedded in the generated
// document. The assembler treats a Templates value as immutable input;
// there is no package-level mutable document state.
type Templates struct {
	Title        string `json:"title" yaml:"title"`
	Author       string `json:"author" yaml:"author"`
	Abstract     string `json:"abstract" yaml:"abstract"`
	Introduction string `json:"introduction" yaml:"introduction"`
	Methodology  string `json:"methodology" yaml:"methodology"`
	Discussion   string `json:"discussion" yaml:"discussion"`
	Conclusion   string `json:"conclusion" yaml:"conclusion"`
}

// DefaultTemplates returns the stock research-paper narrative.
func DefaultTemplates() Templates {
	return Templates{
		Title:  "Greening the Digital Age: Leveraging Indoor Plants and Green Architecture for Carbon Credits to Offset Computational Carbon Emissions",
		Author: "greensim",
		Abstract: "This study investigates the integration of indoor plants and green architectural elements " +
			"to mitigate the carbon emissions produced by computational activities. Using a Monte Carlo " +
			"simulation model, it estimates carbon sequestration potential, synthetic carbon credit " +
			"generation, and offset ratios for varying workspace and plant configurations.",
		Introduction: "This tool models carbon sequestration potential from indoor plants in workspaces to " +
			"offset emissions from digital devices. The user specifies workspace parameters, plant and " +
			"device counts, and biological factors such as leaf area index and light interception. The " +
			"tool runs a Monte Carlo simulation to estimate carbon capture, offset ratios, and synthetic " +
			"carbon credits, emitting CSV data, PNG plots, and a formatted PDF report.",
		Methodology: "Each trial simulates daily plant CO2 uptake from the leaf area index, light " +
			"interception, and a normally distributed photosynthetic rate clamped at zero. Device " +
			"emissions are drawn per device from a gaussian distribution. Offset ratios divide plant " +
			"uptake by device emissions; carbon credits apply a uniform performance factor and " +
			"uncertainty rate. Scenario 2 perturbs every numeric parameter of scenario 1 by an " +
			"independent uniform factor in [0.8, 1.2].",
		Discussion: "The simulation results suggest that indoor plants can contribute meaningfully to " +
			"offsetting emissions from digital devices, especially in large workspaces with optimized " +
			"plant layout. While the offset ratio rarely reaches 100%, the contribution is significant " +
			"enough to justify integration into sustainable building designs.",
		Conclusion: "Synthetic carbon credits derived from verified plant-based sequestration could " +
			"support green financing for digital infrastructure. Future work could incorporate " +
			"species-specific growth curves and real-time monitoring.",
	}
}
