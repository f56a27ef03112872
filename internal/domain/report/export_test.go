package report

// TimestampLayout re-exports timestampLayout for the external test package.
const TimestampLayout = timestampLayout
