package htmlrenderer

// pageTemplate wraps the sketch script in a minimal animation harness.
// The harness seeds a deterministic RNG, exposes the parameter state, and
// drives the sketch's draw function from requestAnimationFrame so that
// elapsed-time reads go through the page clock. Timestamps come from
// performance.now rather than the callback argument's raw value so that a
// patched clock is honored uniformly.
const pageTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Name}}</title>
<style>
  html, body { margin: 0; padding: 0; background: #000; overflow: hidden; }
  canvas { display: block; }
</style>
</head>
<body>
<canvas id="sketch" width="{{.Width}}" height="{{.Height}}"></canvas>
<script>
"use strict";
const SKETCH = {{.State}};

// Deterministic RNG (mulberry32) so the same seed draws the same sketch.
function seededRandom(seed) {
  let a = seed >>> 0;
  return function() {
    a |= 0; a = a + 0x6D2B79F5 | 0;
    let t = Math.imul(a ^ a >>> 15, 1 | a);
    t = t + Math.imul(t ^ t >>> 7, 61 | t) ^ t;
    return ((t ^ t >>> 14) >>> 0) / 4294967296;
  };
}

const random = seededRandom(SKETCH.seed);
const canvas = document.getElementById("sketch");
const ctx = canvas.getContext("2d");
const startTime = performance.now();

{{.Script}}

function frame() {
  const elapsed = performance.now() - startTime;
  if (typeof draw === "function") {
    draw(ctx, elapsed / 1000, SKETCH.params);
  }
  requestAnimationFrame(frame);
}
requestAnimationFrame(frame);
</script>
</body>
</html>
`
