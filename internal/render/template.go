package render

const articleTemplate = `<div class="aineoo-ai-article" style="max-width:1080px;margin:0 auto;line-height:1.85;color:#1f2937;">
<h1 style="font-size:34px;line-height:1.35;margin-bottom:20px;">{{.Title}}</h1>
<p style="font-size:18px;color:#4b5563;margin-bottom:26px;">{{.Intro}}</p>
{{- if .VideoURL}}
<section style="margin-bottom:28px;"><div style="position:relative;width:100%;max-width:920px;margin:0 auto;border-radius:12px;overflow:hidden;box-shadow:0 4px 16px rgba(0,0,0,0.08);"><video controls preload="metadata" playsinline style="width:100%;display:block;border-radius:12px;"><source src="{{.VideoURL}}" type="video/mp4">您的浏览器不支持视频播放。</video></div><p style="text-align:center;margin-top:10px;color:#6b7280;font-size:13px;">{{.Title}} 视频解读</p></section>
{{- end}}
{{- if .TOC}}
<nav style="background:#f9fafb;border:1px solid #e5e7eb;border-radius:10px;padding:16px 20px;margin-bottom:24px;"><h2 style="font-size:20px;margin:0 0 12px;">目录</h2><ol style="margin:0 0 0 20px;padding:0;">
{{- range .TOC}}
<li style="margin:0 0 6px;"><a href="#{{.Anchor}}" style="color:#2563eb;text-decoration:none;">{{.Title}}</a></li>
{{- end}}
</ol></nav>
{{- end}}
{{- if .QuickAnswer}}
<section class="quick-answer" style="background:#eef6ff;border:1px solid #cfe3ff;border-radius:10px;padding:18px 20px;margin-bottom:24px;"><h2 style="font-size:20px;margin:0 0 10px;">一段话回答</h2>
<p style="margin:0;font-size:16px;">{{.QuickAnswer}}</p></section>
{{- end}}
{{- range .Sections}}
<section style="margin-bottom:28px;">
<h2 id="{{.Anchor}}" style="font-size:26px;margin:0 0 16px;padding-top:8px;">{{.Title}}</h2>
{{- range .Paragraphs}}
<p style="margin:0 0 14px;font-size:16px;">{{.}}</p>
{{- end}}
{{- with .Figure}}
<figure style="margin:20px 0 10px;text-align:center;"><img src="{{.URL}}" alt="{{.AltText}}" style="width:100%;max-width:920px;border-radius:10px;" loading="lazy" /><figcaption style="margin-top:8px;color:#6b7280;font-size:13px;">{{.Caption}}</figcaption></figure>
{{- end}}
</section>
{{- end}}
<section style="background:linear-gradient(135deg,#f8fafc 0%,#eef2ff 100%);border:1px solid #c7d2fe;border-radius:12px;padding:24px 28px;margin-bottom:28px;">
<h2 style="font-size:24px;margin:0 0 16px;color:#1e293b;">总结</h2>
<p style="margin:0 0 20px;font-size:16px;line-height:1.9;color:#334155;">{{.Conclusion}}</p>
{{- if .Takeaways}}
<div style="background:#ffffff;border-radius:8px;padding:16px 20px;margin-bottom:20px;"><h3 style="font-size:18px;margin:0 0 12px;color:#1e293b;">关键要点</h3>
{{- range .Takeaways}}
<div style="display:flex;align-items:flex-start;margin:0 0 10px;font-size:15px;color:#374151;"><span style="color:#22c55e;font-weight:bold;margin-right:8px;flex-shrink:0;">&#10003;</span><span>{{.}}</span></div>
{{- end}}
</div>
{{- end}}
{{- if .CTA.Text}}
<div style="background:#2563eb;color:#ffffff;border-radius:8px;padding:16px 20px;"><h3 style="font-size:18px;margin:0 0 8px;color:#ffffff;">{{.CTA.Heading}}</h3><p style="margin:0;font-size:15px;line-height:1.7;color:#e0e7ff;">{{.CTA.Text}}</p></div>
{{- end}}
</section>
{{- if .FAQ}}
<section style="margin-top:28px;margin-bottom:28px;"><h2 style="font-size:24px;margin:0 0 18px;">常见问题（FAQ）</h2>
{{- range .FAQ}}
<h3 style="font-size:18px;margin:16px 0 8px;">{{.Question}}</h3>
<p style="margin:0 0 12px;font-size:15px;color:#374151;">{{.Answer}}</p>
{{- end}}
</section>
{{- end}}
{{- if .Related}}
<section style="border-top:1px solid #e5e7eb;padding-top:24px;margin-top:28px;"><h2 style="font-size:22px;margin:0 0 14px;">相关文章</h2><ul style="margin:0 0 0 18px;padding:0;">
{{- range .Related}}
<li style="margin:0 0 8px;"><a href="{{.Link}}" style="color:#2563eb;text-decoration:none;">{{.Title}}</a></li>
{{- end}}
</ul></section>
{{- end}}
{{- range .Schemas}}
<script type="application/ld+json">{{.}}</script>
{{- end}}
</div>`
