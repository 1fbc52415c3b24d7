package store

const schema = `
CREATE TABLE IF NOT EXISTS articles (
    id         TEXT PRIMARY KEY,
    site       TEXT NOT NULL,
    category   TEXT NOT NULL DEFAULT '',
    url        TEXT NOT NULL,
    title      TEXT NOT NULL,
    context    TEXT NOT NULL,
    scraped_at DATETIME NOT NULL,
    UNIQUE(site, url, context)
);

CREATE INDEX IF NOT EXISTS idx_articles_site ON articles(site);
CREATE INDEX IF NOT EXISTS idx_articles_category ON articles(category);
CREATE INDEX IF NOT EXISTS idx_articles_scraped_at ON articles(scraped_at);
`
