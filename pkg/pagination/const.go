package pagination

// PageDefaultSize is the default page size if not specified
const PageDefaultSize = 20

// PageMaxSize is the maximum allowed page size
const PageMaxSize = 100

// StripMaxPages is the page count up to which the strip lists every page
const StripMaxPages = 7
