package analytics

// FearReference is the fixed reference line drawn on the fear-index chart.
// Below it the market is calm; well above it, panicked.
const FearReference = 20.0
