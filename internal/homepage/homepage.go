// Package homepage holds the built-in local start page. The page is shown
// for the URL sentinel, never fetched over the network.
package homepage

// URL is the sentinel address for the built-in start page.
const URL = "about:home"

// IsHome reports whether url names the built-in start page. An empty URL is
// treated as home so a tab that never navigated snapshots as the homepage.
func IsHome(url string) bool {
	return url == "" || url == URL
}

// Document is the start page markup, loaded into a view as inline HTML.
const Document = `<!doctype html>
<html>
<head><meta charset="utf-8"><title>flint</title>
<style>
body{margin:0;font-family:Arial;background:#07101a;color:#d7dade;display:flex;flex-direction:column;align-items:center;justify-content:center;height:100vh}
a{color:#7bdff6;text-decoration:none;padding:8px 12px;border-radius:8px;background:#071a22;margin:6px;display:inline-block}
input{padding:12px;border-radius:24px;border:1px solid #203139;width:360px;background:#02121a;color:#cfe7ee}
.links{margin-top:18px}
footer{position:fixed;bottom:6px;color:#6b7d83;font-size:12px}
</style>
</head>
<body>
<h1 style="font-weight:300">flint</h1>
<input id="q" placeholder="Search or enter URL" onkeypress="if(event.key==='Enter'){location.href='https://www.google.com/search?q='+encodeURIComponent(this.value)}">
<div class="links">
<a href="https://www.youtube.com">YouTube</a>
<a href="https://www.google.com">Google</a>
<a href="https://github.com">GitHub</a>
</div>
<footer>flint</footer>
</body>
</html>
`
