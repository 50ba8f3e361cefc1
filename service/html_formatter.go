package service

import (
	"encoding/json"
	"html/template"
	"sort"
	"strings"

	"github.com/tcimlab/estudios/domain"
)

// HTMLFormatterImpl renders the interactive HTML report: a stacked bar chart
// of categories split by suitability level, with click-through drill-down
// into subcategories and the underlying studies.
type HTMLFormatterImpl struct{}

// NewHTMLFormatter creates a new HTML report formatter
func NewHTMLFormatter() *HTMLFormatterImpl {
	return &HTMLFormatterImpl{}
}

// reportCategory is the per-category payload embedded into the report page.
type reportCategory struct {
	Name          string         `json:"name"`
	Count         int            `json:"count"`
	Levels        map[string]int `json:"levels"`
	Subcategories []reportCount  `json:"subcategories"`
	Studies       []reportStudy  `json:"studies"`
}

type reportCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type reportStudy struct {
	Title       string `json:"title"`
	Author      string `json:"author"`
	Year        string `json:"year"`
	Subcategory string `json:"subcategory"`
	Suitability string `json:"suitability"`
}

type reportData struct {
	Title      string            `json:"title"`
	Total      int               `json:"total"`
	Levels     []string          `json:"levels"`
	Colors     map[string]string `json:"colors"`
	Categories []reportCategory  `json:"categories"`
}

// FormatReport builds the self-contained report page. Chart rendering happens
// client-side via the Plotly CDN; everything else is inlined.
func (f *HTMLFormatterImpl) FormatReport(agg *domain.Aggregation, fields domain.FieldConfig, title string) (string, error) {
	data := reportData{
		Title:  title,
		Total:  agg.Total,
		Levels: observedLevels(agg),
		Colors: make(map[string]string),
	}
	for _, level := range data.Levels {
		data.Colors[level] = domain.SuitabilityColor(level)
	}

	for _, entry := range agg.RankedCategories {
		category := reportCategory{
			Name:   entry.Name,
			Count:  entry.Count,
			Levels: make(map[string]int),
		}
		for level, count := range agg.Suitability[entry.Name] {
			category.Levels[level] = count
		}
		for _, sub := range agg.RankedSubcategories[entry.Name] {
			category.Subcategories = append(category.Subcategories, reportCount(sub))
		}
		for _, record := range agg.Studies[entry.Name] {
			category.Studies = append(category.Studies, reportStudy{
				Title:       record.Get(fields.Title),
				Author:      record.Get(fields.Author),
				Year:        record.Get(fields.Year),
				Subcategory: record.Get(fields.Subcategory),
				Suitability: record.Get(fields.Suitability),
			})
		}
		data.Categories = append(data.Categories, category)
	}

	payload, err := json.Marshal(data)
	if err != nil {
		return "", domain.NewOutputError("failed to marshal report data", err)
	}

	var builder strings.Builder
	err = reportTemplate.Execute(&builder, map[string]interface{}{
		"Title": title,
		"Total": agg.Total,
		"Data":  template.JS(payload),
	})
	if err != nil {
		return "", domain.NewRenderError("failed to render HTML report", err)
	}

	return builder.String(), nil
}

// observedLevels returns the known suitability levels in display order,
// followed by any level present in the data but not on the known list.
func observedLevels(agg *domain.Aggregation) []string {
	levels := domain.SuitabilityLevels()
	known := make(map[string]bool, len(levels))
	for _, level := range levels {
		known[level] = true
	}

	var extras []string
	seen := make(map[string]bool)
	for _, entry := range agg.RankedCategories {
		for level := range agg.Suitability[entry.Name] {
			if !known[level] && !seen[level] {
				seen[level] = true
				extras = append(extras, level)
			}
		}
	}
	sort.Strings(extras)

	return append(levels, extras...)
}

var reportTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<script src="https://cdn.plot.ly/plotly-2.27.0.min.js"></script>
<style>
  body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif; margin: 0; background: #f7f8fa; color: #2c3e50; }
  header { background: #2c3e50; color: #fff; padding: 18px 28px; }
  header h1 { margin: 0; font-size: 1.4em; }
  header p { margin: 4px 0 0; opacity: 0.8; font-size: 0.9em; }
  main { max-width: 1200px; margin: 0 auto; padding: 24px; }
  .card { background: #fff; border-radius: 8px; box-shadow: 0 1px 3px rgba(0,0,0,0.1); padding: 20px; margin-bottom: 24px; }
  #detail { display: none; }
  #detail h2 { margin-top: 0; font-size: 1.15em; }
  table { width: 100%; border-collapse: collapse; font-size: 0.9em; }
  th, td { text-align: left; padding: 8px 10px; border-bottom: 1px solid #e5e8eb; }
  th { cursor: pointer; user-select: none; background: #f0f2f4; white-space: nowrap; }
  th .dir { opacity: 0.5; font-size: 0.8em; }
  tr:hover td { background: #f7f9fb; }
  .badge { display: inline-block; padding: 2px 8px; border-radius: 10px; color: #fff; font-size: 0.8em; }
  .hint { color: #7f8c8d; font-size: 0.85em; margin: 0 0 10px; }
  #subchart { margin-bottom: 16px; }
</style>
</head>
<body>
<header>
  <h1>{{.Title}}</h1>
  <p>{{.Total}} studies</p>
</header>
<main>
  <div class="card">
    <p class="hint">Click a bar to inspect the subcategories and studies of that category.</p>
    <div id="chart"></div>
  </div>
  <div class="card" id="detail">
    <h2 id="detail-title"></h2>
    <div id="subchart"></div>
    <table id="studies">
      <thead>
        <tr>
          <th data-key="title">Title <span class="dir"></span></th>
          <th data-key="author">Author <span class="dir"></span></th>
          <th data-key="year">Year <span class="dir"></span></th>
          <th data-key="subcategory">Subcategory <span class="dir"></span></th>
          <th data-key="suitability">Suitability <span class="dir"></span></th>
        </tr>
      </thead>
      <tbody></tbody>
    </table>
  </div>
</main>
<script>
const data = {{.Data}};

const names = data.categories.map(c => c.name);
const traces = data.levels.map(level => ({
  name: level,
  type: 'bar',
  x: names,
  y: data.categories.map(c => c.levels[level] || 0),
  marker: { color: data.colors[level] },
}));

Plotly.newPlot('chart', traces, {
  barmode: 'stack',
  margin: { t: 20 },
  xaxis: { tickangle: -30 },
  yaxis: { title: 'Studies' },
  legend: { orientation: 'h', y: 1.1 },
}, { responsive: true, displaylogo: false });

let current = null;
let sortKey = null;
let sortAsc = true;

document.getElementById('chart').on('plotly_click', ev => {
  const category = data.categories.find(c => c.name === ev.points[0].x);
  if (category) showDetail(category);
});

function showDetail(category) {
  current = category;
  sortKey = null;
  document.getElementById('detail').style.display = 'block';
  document.getElementById('detail-title').textContent =
    category.name + ' — ' + category.count + ' studies';

  Plotly.newPlot('subchart', [{
    type: 'bar',
    x: category.subcategories.map(s => s.name),
    y: category.subcategories.map(s => s.count),
    marker: { color: '#4e79a7' },
  }], {
    height: 260,
    margin: { t: 10 },
    xaxis: { tickangle: -30 },
    yaxis: { title: 'Studies' },
  }, { responsive: true, displaylogo: false });

  renderRows(category.studies);
  document.getElementById('detail').scrollIntoView({ behavior: 'smooth' });
}

function renderRows(studies) {
  const body = document.querySelector('#studies tbody');
  body.innerHTML = '';
  for (const s of studies) {
    const tr = document.createElement('tr');
    for (const key of ['title', 'author', 'year', 'subcategory']) {
      const td = document.createElement('td');
      td.textContent = s[key];
      tr.appendChild(td);
    }
    const td = document.createElement('td');
    const badge = document.createElement('span');
    badge.className = 'badge';
    badge.textContent = s.suitability;
    badge.style.background = data.colors[s.suitability] || '#95a5a6';
    td.appendChild(badge);
    tr.appendChild(td);
    body.appendChild(tr);
  }
}

document.querySelectorAll('#studies th').forEach(th => {
  th.addEventListener('click', () => {
    const key = th.dataset.key;
    sortAsc = key === sortKey ? !sortAsc : true;
    sortKey = key;
    const rows = current.studies.slice().sort((a, b) =>
      a[key].localeCompare(b[key], undefined, { numeric: true }) * (sortAsc ? 1 : -1));
    document.querySelectorAll('#studies th .dir').forEach(d => d.textContent = '');
    th.querySelector('.dir').textContent = sortAsc ? '▲' : '▼';
    renderRows(rows);
  });
});
</script>
</body>
</html>
`))
