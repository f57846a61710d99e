/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: templates.go
Description: HTML template for the profile dashboard.
*/

package reporting

// dashboardTemplate is the main HTML template for the dashboard
const dashboardTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Title}} - columnscout</title>
    <script src="https://cdn.jsdelivr.net/npm/chart.js"></script>
    <style>
        * {
            margin: 0;
            padding: 0;
            box-sizing: border-box;
        }

        body {
            font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif;
            background: linear-gradient(135deg, #667eea 0%, #764ba2 100%);
            min-height: 100vh;
            color: #333;
        }

        .container {
            max-width: 1400px;
            margin: 0 auto;
            padding: 20px;
        }

        .header, .stat-card, .chart-container, .column-card {
            background: rgba(255, 255, 255, 0.95);
            border-radius: 15px;
            box-shadow: 0 8px 32px rgba(0, 0, 0, 0.1);
        }

        .header {
            padding: 30px;
            margin-bottom: 30px;
            text-align: center;
        }

        .header h1 {
            color: #4a5568;
            font-size: 2.5rem;
            margin-bottom: 10px;
        }

        .header p {
            color: #718096;
        }

        .stats-grid {
            display: grid;
            grid-template-columns: repeat(auto-fit, minmax(200px, 1fr));
            gap: 20px;
            margin-bottom: 30px;
        }

        .stat-card {
            padding: 25px;
        }

        .stat-card .value {
            font-size: 2.2rem;
            font-weight: 700;
            color: #2d3748;
        }

        .stat-card .label, .column-card .label {
            color: #718096;
            font-size: 0.85rem;
            text-transform: uppercase;
            letter-spacing: 0.5px;
        }

        .chart-container {
            padding: 25px;
            margin-bottom: 30px;
        }

        .chart-wrapper {
            position: relative;
            height: 300px;
        }

        .column-card {
            padding: 20px;
            margin-bottom: 15px;
            border-left: 4px solid #38a169;
        }

        .column-card.medium { border-left-color: #d69e2e; }
        .column-card.low { border-left-color: #e53e3e; }

        .column-card h3 {
            color: #2d3748;
            margin-bottom: 10px;
        }

        .column-card code {
            background: #edf2f7;
            border-radius: 5px;
            padding: 2px 6px;
            word-break: break-all;
        }

        .column-card table {
            width: 100%;
            border-collapse: collapse;
            margin-top: 10px;
        }

        .column-card td {
            padding: 4px 8px;
            border-bottom: 1px solid #edf2f7;
            color: #4a5568;
        }

        .footer {
            text-align: center;
            padding: 30px;
            color: rgba(255, 255, 255, 0.8);
            font-size: 0.9rem;
        }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>{{.Title}}</h1>
            <p>{{.Profile.Source}} | Generated on {{.GeneratedAt.Format "January 2, 2006 at 3:04 PM"}} | Run: {{.Profile.RunID}} | Version: {{.Version}}</p>
        </div>

        <div class="stats-grid">
            <div class="stat-card">
                <div class="value">{{.Summary.Rows}}</div>
                <div class="label">Rows</div>
            </div>
            <div class="stat-card">
                <div class="value">{{.Summary.Columns}}</div>
                <div class="label">Columns</div>
            </div>
            <div class="stat-card">
                <div class="value">{{printf "%.1f" (mul100 .Summary.MeanConfidence)}}%</div>
                <div class="label">Mean Confidence</div>
            </div>
            <div class="stat-card">
                <div class="value">{{.Summary.Semantic}}</div>
                <div class="label">Semantic Types</div>
            </div>
            <div class="stat-card">
                <div class="value">{{.Summary.Outliers}}</div>
                <div class="label">Outliers</div>
            </div>
            <div class="stat-card">
                <div class="value">{{.Summary.Backouts}}</div>
                <div class="label">Backouts</div>
            </div>
        </div>

        <div class="chart-container">
            <h3>{{.Chart.Title}}</h3>
            <div class="chart-wrapper"><canvas id="confidenceChart"></canvas></div>
        </div>

        {{range .Columns}}
        <div class="column-card {{.Quality}}" id="column-{{.Name}}">
            <h3>{{.Name}}</h3>
            <div class="label">{{.Type}}{{if .SemanticType}} | {{.SemanticType}}{{end}} | {{.Percent}}</div>
            <p><code>{{.RegExp}}</code></p>
            <table>
                <tr><td>Samples</td><td>{{.SampleCount}}</td><td>Matches</td><td>{{.MatchCount}}</td></tr>
                <tr><td>Nulls</td><td>{{.NullCount}}</td><td>Blanks</td><td>{{.BlankCount}}</td></tr>
                <tr><td>Outliers</td><td>{{.OutlierCount}}</td><td>Distinct</td><td>{{len .Cardinality}}{{if .CardinalityCapped}}+{{end}}</td></tr>
                <tr><td>Min</td><td>{{.Min}}</td><td>Max</td><td>{{.Max}}</td></tr>
                {{if .DateFormat}}<tr><td>Format</td><td colspan="3">{{.DateFormat}}</td></tr>{{end}}
                {{if .Examples}}<tr><td>Top</td><td colspan="3">{{.Examples}}</td></tr>{{end}}
            </table>
        </div>
        {{end}}

        <div class="footer">
            Locale {{.Profile.Locale}} | Duration {{.Profile.Duration}}
        </div>
    </div>

    <script>
        const chart = {{.Chart}};
        new Chart(document.getElementById('confidenceChart'), {
            type: chart.type,
            data: chart.data,
            options: chart.options
        });
    </script>
</body>
</html>
`
