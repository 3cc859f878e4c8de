package site

// pageTemplate is the html/template for every page. The ids and classes
// on the theme toggle, nav toggle, menu, typing target and contact form
// are what the wasm client binds to.
const pageTemplate = `<!DOCTYPE html>
<html lang="en" data-theme="auto">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{if .Home}}{{.SiteTitle}}{{else}}{{.Title}} | {{.SiteTitle}}{{end}}</title>
  <link rel="stylesheet" href="{{.BasePath}}static/style.css">
  <link rel="stylesheet" href="https://cdnjs.cloudflare.com/ajax/libs/font-awesome/6.5.2/css/all.min.css">
  <script>
    (function () {
      try {
        var p = localStorage.getItem("theme-preference");
        if (p === "dark" || p === "light") document.documentElement.setAttribute("data-theme", p);
      } catch (e) {}
    })();
  </script>
</head>
<body>
  <header class="site-header">
    <div class="container">
      <a class="brand" href="{{.BasePath}}index.html">{{.SiteTitle}}</a>
      <nav aria-label="Primary">
        <ul class="nav-menu" id="primary-menu">
          {{- range .Menu}}
          <li><a href="{{.Href}}"{{if .Active}} class="active" aria-current="page"{{end}}>{{.Title}}</a></li>
          {{- end}}
        </ul>
      </nav>
      <div class="header-actions">
        <button class="theme-toggle" id="theme-toggle" type="button" aria-label="Toggle theme" aria-pressed="false"><i class="fa-solid fa-circle-half-stroke"></i></button>
        <button class="nav-toggle" type="button" aria-label="Toggle navigation" aria-controls="primary-menu" aria-expanded="false"><i class="fa-solid fa-bars"></i></button>
      </div>
    </div>
  </header>

  <main>
    {{- if .Home}}
    <section class="hero">
      <div class="container">
        <h1>{{if .Author}}Hi, I'm {{.Author}}{{else}}{{.SiteTitle}}{{end}}</h1>
        <p class="tagline">I'm a <span class="typing" data-phrases="{{.PhrasesJSON}}"></span></p>
      </div>
    </section>
    {{- end}}

    <article class="page-content container">
      {{.Content}}
    </article>

    {{- if .Home}}
    <section class="contact container" id="contact">
      <h2>Get in touch</h2>
      <form class="contact-form" id="contact-form" action="{{.RelayPath}}" method="POST">
        <label>Name <input type="text" name="name" autocomplete="name" required></label>
        <label>Email <input type="email" name="email" autocomplete="email" required></label>
        <label>Subject <input type="text" name="subject" required></label>
        <label>Message <textarea name="message" rows="6" required></textarea></label>
        <button class="btn" id="submit-btn" type="submit"><span class="btn-text">Send Message</span></button>
        <p class="form-status" id="form-status" role="status" aria-live="polite"></p>
      </form>
    </section>
    {{- end}}
  </main>

  <footer class="site-footer">
    <div class="container">&copy; {{.Year}} {{if .Author}}{{.Author}}{{else}}{{.SiteTitle}}{{end}}</div>
  </footer>

  <script src="{{.BasePath}}static/wasm_exec.js"></script>
  <script src="{{.BasePath}}static/loader.js" data-wasm="{{.BasePath}}app.wasm"></script>
</body>
</html>`
