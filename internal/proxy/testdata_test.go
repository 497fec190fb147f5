package proxy

// sampleHTMLWithYale is a page with Yale references in text, attributes and URLs
const sampleHTMLWithYale = `<!DOCTYPE html>
<html>
<head>
  <title>Yale University Test Page</title>
  <link rel="stylesheet" href="/css/main.css">
</head>
<body>
  <header>
    <h1>Welcome to Yale University</h1>
    <nav>
      <ul>
        <li><a href="https://www.yale.edu/about">About Yale</a></li>
        <li><a href="https://www.yale.edu/admissions">Admissions</a></li>
        <li><a href="/news">Yale News</a></li>
      </ul>
    </nav>
  </header>
  <main>
    <p>Yale University is a private Ivy League research university in New Haven, Connecticut.</p>
    <p>Founded in 1701, YALE is the third-oldest institution of higher education in the United States.</p>
    <img src="https://www.yale.edu/images/logo.png" alt="Yale Logo">
    <div class="banner" style="background-image: url('images/yale-bg.png')">Visit yale today</div>
    <a href="mailto:info@yale.edu" title="Email Yale">Email us</a>
    <!-- Yale comment -->
  </main>
  <script>var school = "Yale";</script>
</body>
</html>`
