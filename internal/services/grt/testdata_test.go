package grt

const sampleHomePage = `<!DOCTYPE html>
<html>
<head><title>GRT Jewellers</title></head>
<body>
<div class="rates">
  <ul class="state_rates">
    <li>GOLD - 24k - 1 g - Rs7000</li>
    <li>GOLD - 22k - 1 g - Rs6800</li>
    <li>GOLD - 18k - 1 g - Rs5600</li>
    <li>PLATINUM - 1 g - Rs3200</li>
    <li>SILVER - 1 g - Rs85</li>
    <li>SILVER - 10 g - Rs850</li>
  </ul>
</div>
</body>
</html>`
